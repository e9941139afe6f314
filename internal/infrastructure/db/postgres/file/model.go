package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID        uint64
		UUID      uuid.UUID
		OwnerID   uint64
		OwnerUUID uuid.UUID

		Name        string
		Description string
		Downloads   int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)
