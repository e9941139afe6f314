package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	User struct {
		ID           uint64
		UUID         uuid.UUID
		Username     string
		PasswordHash *string
		Role         string
		Email        string
		FirstName    string
		LastName     string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
