package link

import (
	"time"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

type (
	ID   uint64
	Link struct {
		ID   ID
		Href string

		FileID   file.ID
		FileUUID uuid.UUID
		FileName string

		OwnerID   user.ID
		OwnerUUID user.UUID

		CreatedAt time.Time
		// ExpireAt is nil for links that never expire.
		ExpireAt *time.Time
	}
	Links []*Link
)

// Expired reports whether the link is past its expiry. Comparison happens
// in UTC; a link with no expiry never expires.
func (l *Link) Expired() bool {
	return l.ExpireAt != nil && l.ExpireAt.Before(time.Now().UTC())
}
