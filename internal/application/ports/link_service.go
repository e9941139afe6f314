package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/link"
	"file-storage-api/internal/domain/user"
)

type LinkService interface {
	CreateLink(ctx context.Context, actor user.Actor, fileUUID uuid.UUID, durationMinutes int) (*link.Link, error)
	FindFileLinks(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) (link.Links, error)
	DeleteLink(ctx context.Context, actor user.Actor, href string) error
	DownloadByLink(ctx context.Context, href string) (io.ReadCloser, *link.Link, error)
	// PurgeExpired lazily removes a user's expired links; called after login.
	PurgeExpired(ctx context.Context, uuid user.UUID) error
	ShareURL(l *link.Link) string
	// SizeOf reads the target payload's on-disk size, -1 when it is gone.
	SizeOf(l *link.Link) int64
}
