package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	// File is the outward shape of a record. The on-disk path never
	// leaves the service; size is -1 when the payload is missing.
	File struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Size        int64     `json:"size"`
		Downloads   int64     `json:"downloads"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
	Files []File

	UpdateRequest struct {
		Filename    *string `json:"filename"`
		Description *string `json:"description"`
	}

	ResponseData struct {
		Data Files `json:"data"`
	}
)
