package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		ID           ID
		UUID         UUID
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

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Actor is the authenticated identity a request acts as,
// reconstructed from token claims.
type Actor struct {
	UUID UUID
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
