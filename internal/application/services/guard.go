package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

var (
	ErrInvalidName  = errors.New("invalid filename")
	ErrFileNotFound = errors.New("file not found")
	ErrLinkNotFound = errors.New("link not found")
	ErrLinkExpired  = errors.New("link has expired")
	ErrUserNotFound = errors.New("user not found")
)

// authorizedFile fetches a record and applies the owner-or-admin check.
// Unauthorized access reports the same not-found shape as a missing record
// so strangers cannot probe for files they do not own.
func authorizedFile(ctx context.Context, repo file.Repository, actor user.Actor, fileUUID uuid.UUID) (*file.File, error) {
	f, err := repo.FetchFileByUUID(ctx, fileUUID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}
	if !actor.IsAdmin() && f.OwnerUUID != actor.UUID {
		return nil, ErrFileNotFound
	}
	return f, nil
}
