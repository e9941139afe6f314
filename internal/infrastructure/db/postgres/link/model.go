package link

import (
	"time"

	"github.com/google/uuid"
)

type (
	Link struct {
		ID   uint64
		Href string

		FileID    uint64
		FileUUID  uuid.UUID
		FileName  string
		OwnerID   uint64
		OwnerUUID uuid.UUID

		CreatedAt time.Time
		ExpireAt  *time.Time
	}
	Links []*Link
)
