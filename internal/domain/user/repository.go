package user

import (
	"context"
)

type Repository interface {
	FetchUserByUUID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByUsername(ctx context.Context, username string) (*User, error)
	FetchUsers(ctx context.Context, page int) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, req User) (*User, error)
	UpdatePassword(ctx context.Context, id ID, passwordHash string) error
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
	DeleteUser(ctx context.Context, id ID) (*User, error)
}
