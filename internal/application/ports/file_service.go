package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

type FileService interface {
	FindUserFiles(ctx context.Context, actor user.Actor) (file.Files, error)
	GetFile(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) (*file.File, error)
	Upload(ctx context.Context, actor user.Actor, filename string, payload io.Reader, description string, force bool) (*file.File, error)
	Rename(ctx context.Context, actor user.Actor, fileUUID uuid.UUID, newName string) (*file.File, error)
	SetDescription(ctx context.Context, actor user.Actor, fileUUID uuid.UUID, text string) (*file.File, error)
	Delete(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) error
	Download(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) (io.ReadCloser, *file.File, error)
	// SizeOf reads the authoritative on-disk size, -1 when the payload is gone.
	SizeOf(f *file.File) int64
}
