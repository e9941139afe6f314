package link

import (
	"context"
	"time"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

type Repository interface {
	FetchLinkByHref(ctx context.Context, href string) (*Link, error)
	FetchLinksByFile(ctx context.Context, fileID file.ID) (Links, error)
	CreateLink(ctx context.Context, fileID file.ID, href string, expireAt *time.Time) (*Link, error)
	DeleteLink(ctx context.Context, id ID) error
	DeleteLinksByFile(ctx context.Context, fileID file.ID) error
	// DeleteExpiredByOwner lazily purges an owner's expired links.
	DeleteExpiredByOwner(ctx context.Context, ownerID user.ID) error
}
