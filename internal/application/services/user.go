package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/domain/file"
	domain "file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/mq"
)

var ErrWrongPassword = errors.New("wrong password")

type UserService struct {
	store          ports.BlobStore
	userRepository domain.Repository
	fileRepository file.Repository
	mq             ports.AuditPublisher
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	store ports.BlobStore,
	userRepository domain.Repository,
	fileRepository file.Repository,
	mq ports.AuditPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		store:          store,
		userRepository: userRepository,
		fileRepository: fileRepository,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByUUID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) Register(ctx context.Context, u domain.User, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	h := string(hash)
	u.PasswordHash = &h
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	uRet, err := us.userRepository.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	if uRet != nil {
		us.mq.GetInputChan() <- mq.NewEvent(mq.ScopeUser, uRet.UUID.String(), "register", mq.OutcomeOK, uRet.Username)
	}

	us.mCounter.WithLabelValues("users_created_total").Inc()

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	uRet, err := us.userRepository.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	if uRet != nil {
		us.mq.GetInputChan() <- mq.NewEvent(mq.ScopeUser, uRet.UUID.String(), "update", mq.OutcomeOK, uRet.Username)
	}

	us.mCounter.WithLabelValues("users_updated_total").Inc()

	return uRet, nil
}

func (us *UserService) VerifyPassword(ctx context.Context, uuid domain.UUID, password string) error {
	u, err := us.userRepository.FetchUserByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)) != nil {
		return ErrWrongPassword
	}

	return nil
}

func (us *UserService) ChangePassword(ctx context.Context, uuid domain.UUID, oldPassword, newPassword string) error {
	if err := us.VerifyPassword(ctx, uuid, oldPassword); err != nil {
		return err
	}

	u, err := us.userRepository.FetchUserByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = us.userRepository.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	us.mq.GetInputChan() <- mq.NewEvent(mq.ScopeUser, uuid.String(), "change_password", mq.OutcomeOK, u.Username)

	return nil
}

// DeleteUser cascades: every owned file's links and payload go first, then
// the records, then the user's storage directory and the user itself.
// Removal failures are surfaced, not swallowed.
func (us *UserService) DeleteUser(ctx context.Context, userUUID domain.UUID) error {
	id, err := us.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		return err
	}

	count, err := us.fileRepository.DeleteFilesByOwner(ctx, id, func(f *file.File) error {
		rerr := us.store.Remove(f.Namespace(), f.Name)
		if rerr != nil && os.IsNotExist(rerr) {
			return nil
		}
		return rerr
	})
	if err != nil {
		us.mq.GetInputChan() <- mq.NewEvent(mq.ScopeUser, userUUID.String(), "delete", mq.OutcomeError, err.Error())
		return err
	}

	if err = us.store.RemoveNamespace(userUUID.String()); err != nil {
		us.mq.GetInputChan() <- mq.NewEvent(mq.ScopeUser, userUUID.String(), "delete", mq.OutcomeError, err.Error())
		return fmt.Errorf("failed to remove user storage dir: %w", err)
	}

	u, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if u != nil {
		us.mq.GetInputChan() <- mq.NewEvent(
			mq.ScopeUser, userUUID.String(), "delete", mq.OutcomeOK,
			fmt.Sprintf("%s, %d files deleted", u.Username, count),
		)
	}

	us.mCounter.WithLabelValues("users_deleted_total").Inc()

	return nil
}
