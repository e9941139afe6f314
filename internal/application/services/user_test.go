package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"file-storage-api/internal/domain/user"
)

func TestUserService_Register(t *testing.T) {
	fx := newSvcFixture(t)
	ctx := context.Background()

	u, err := fx.userSvc.Register(ctx, user.User{Username: "alice"}, "Secret!1")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, user.RoleUser, u.Role, "role defaults to user")
	require.NotNil(t, u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("Secret!1")))
}

func TestUserService_ChangePassword(t *testing.T) {
	fx := newSvcFixture(t)
	ctx := context.Background()

	u, err := fx.userSvc.Register(ctx, user.User{Username: "alice"}, "Secret!1")
	require.NoError(t, err)

	err = fx.userSvc.ChangePassword(ctx, u.UUID, "wrong-old", "Another!2")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, fx.userSvc.ChangePassword(ctx, u.UUID, "Secret!1", "Another!2"))

	stored, err := fx.users.FetchUserByUUID(ctx, u.UUID)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("Another!2")))
}

func TestUserService_VerifyPassword(t *testing.T) {
	fx := newSvcFixture(t)
	ctx := context.Background()

	u, err := fx.userSvc.Register(ctx, user.User{Username: "alice"}, "Secret!1")
	require.NoError(t, err)

	assert.NoError(t, fx.userSvc.VerifyPassword(ctx, u.UUID, "Secret!1"))
	assert.ErrorIs(t, fx.userSvc.VerifyPassword(ctx, u.UUID, "nope"), ErrWrongPassword)
	assert.ErrorIs(t, fx.userSvc.VerifyPassword(ctx, uuid.New(), "Secret!1"), ErrUserNotFound)
}

func TestUserService_DeleteUser_Cascades(t *testing.T) {
	fx := newSvcFixture(t)
	ctx := context.Background()

	u, err := fx.userSvc.Register(ctx, user.User{Username: "alice"}, "Secret!1")
	require.NoError(t, err)
	actor := user.Actor{UUID: u.UUID, Role: u.Role}

	f1, err := fx.fileSvc.Upload(ctx, actor, "a.txt", strings.NewReader("a"), "", false)
	require.NoError(t, err)
	f2, err := fx.fileSvc.Upload(ctx, actor, "b.txt", strings.NewReader("b"), "", false)
	require.NoError(t, err)
	l, err := fx.linkSvc.CreateLink(ctx, actor, f1.UUID, 0)
	require.NoError(t, err)

	require.NoError(t, fx.userSvc.DeleteUser(ctx, u.UUID))

	gone, err := fx.users.FetchUserByUUID(ctx, u.UUID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	for _, f := range []string{f1.Name, f2.Name} {
		assert.False(t, fx.store.Exists(u.UUID.String(), f))
	}

	_, _, err = fx.linkSvc.DownloadByLink(ctx, l.Href)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	files, err := fx.files.FetchFiles(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}
