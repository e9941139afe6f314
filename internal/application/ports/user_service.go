package ports

import (
	"context"

	"file-storage-api/internal/domain/user"
)

type UserService interface {
	Register(ctx context.Context, u user.User, password string) (*user.User, error)
	FindUserByUUID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindUserByUsername(ctx context.Context, username string) (*user.User, error)
	FindUsers(ctx context.Context, page int) (user.Users, error)
	UpdateUser(ctx context.Context, u user.User) (*user.User, error)
	ChangePassword(ctx context.Context, uuid user.UUID, oldPassword, newPassword string) error
	VerifyPassword(ctx context.Context, uuid user.UUID, password string) error
	DeleteUser(ctx context.Context, uuid user.UUID) error
}
