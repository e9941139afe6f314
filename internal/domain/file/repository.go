package file

import (
	"context"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/user"
)

// Repository persists file metadata. Mutations that touch both the
// metadata row and the on-disk payload take a callback which runs inside
// the row-locked transaction: if the callback fails, the metadata change
// is rolled back so name and path never diverge.
type Repository interface {
	FetchFiles(ctx context.Context, ownerID user.ID) (Files, error)
	FetchFileByUUID(ctx context.Context, id uuid.UUID) (*File, error)
	FetchFileByName(ctx context.Context, ownerID user.ID, name string) (*File, error)
	CreateFile(ctx context.Context, req *File) (*File, error)

	// RenameFile updates the metadata name under a row lock, then invokes
	// move with the locked record still holding the old name.
	RenameFile(ctx context.Context, id ID, newName string, move func(f *File) error) (*File, error)

	// OverwriteFile resets the download counter, replaces the description
	// when a non-empty one is supplied, drops every link pointing at the
	// record and invokes write to replace the payload bytes.
	OverwriteFile(ctx context.Context, id ID, description string, write func(f *File) error) (*File, error)

	UpdateDescription(ctx context.Context, id ID, description string) (*File, error)

	// DeleteFile drops the record's links, invokes remove to delete the
	// payload and only then deletes the row. A failed remove aborts the
	// whole operation.
	DeleteFile(ctx context.Context, id ID, remove func(f *File) error) error

	// DeleteFilesByOwner cascades DeleteFile over every record of an owner.
	DeleteFilesByOwner(ctx context.Context, ownerID user.ID, remove func(f *File) error) (int, error)

	IncrementDownloads(ctx context.Context, id ID) error
}
