package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"file-storage-api/internal/application/ports"
	domain "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
	fileDB "file-storage-api/internal/infrastructure/db/postgres/file"
	"file-storage-api/internal/infrastructure/mq"
)

type FileService struct {
	store          ports.BlobStore
	fileRepository domain.Repository
	userRepository user.Repository
	mq             ports.AuditPublisher
	mCounter       *prometheus.CounterVec
}

func NewFileService(
	store ports.BlobStore,
	fileRepository domain.Repository,
	userRepository user.Repository,
	mq ports.AuditPublisher,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		store:          store,
		fileRepository: fileRepository,
		userRepository: userRepository,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (fs *FileService) FindUserFiles(ctx context.Context, actor user.Actor) (domain.Files, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, actor.UUID)
	if err != nil {
		return nil, err
	}

	fls, err := fs.fileRepository.FetchFiles(ctx, id)
	if err != nil {
		return nil, err
	}

	return fls, nil
}

func (fs *FileService) GetFile(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) (*domain.File, error) {
	return authorizedFile(ctx, fs.fileRepository, actor, fileUUID)
}

// Upload stores a new payload, or overwrites an existing record when force
// is set. Overwriting reuses the record's identity: the download counter
// resets to zero and every outstanding link to it is dropped.
func (fs *FileService) Upload(ctx context.Context, actor user.Actor, filename string, payload io.Reader, description string, force bool) (*domain.File, error) {
	name := domain.NormalizeName(filename)
	if !domain.ValidName(name) {
		fs.audit(mq.ScopeFile, actor, "upload", mq.OutcomeError, fmt.Sprintf("invalid filename %q", name))
		return nil, ErrInvalidName
	}
	description = domain.TruncateDescription(description)

	id, err := fs.userRepository.FetchInternalID(ctx, actor.UUID)
	if err != nil {
		return nil, err
	}

	exist, err := fs.fileRepository.FetchFileByName(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		if !force {
			fs.audit(mq.ScopeFile, actor, "upload", mq.OutcomeError, fmt.Sprintf("file %q already exists", name))
			return nil, fileDB.ErrNameAlreadyExists
		}
		out, err := fs.fileRepository.OverwriteFile(ctx, exist.ID, description, func(f *domain.File) error {
			_, werr := fs.store.Save(f.Namespace(), f.Name, payload)
			return werr
		})
		if err != nil {
			return nil, err
		}

		fs.audit(mq.ScopeFile, actor, "overwrite", mq.OutcomeOK, out.Name)
		fs.mCounter.WithLabelValues("files_overwritten_total").Inc()

		return out, nil
	}

	out, err := fs.fileRepository.CreateFile(ctx, &domain.File{
		OwnerID:     id,
		OwnerUUID:   actor.UUID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	if _, err = fs.store.Save(out.Namespace(), out.Name, payload); err != nil {
		// keep metadata and disk in sync: a record must not survive
		// without its payload
		_ = fs.fileRepository.DeleteFile(ctx, out.ID, func(*domain.File) error { return nil })
		return nil, err
	}

	fs.audit(mq.ScopeFile, actor, "upload", mq.OutcomeOK, out.Name)
	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return out, nil
}

// Rename is a no-op when the name is unchanged. The metadata update and
// the filesystem move run under the record's row lock; a failed move rolls
// the metadata back.
func (fs *FileService) Rename(ctx context.Context, actor user.Actor, fileUUID uuid.UUID, newName string) (*domain.File, error) {
	f, err := authorizedFile(ctx, fs.fileRepository, actor, fileUUID)
	if err != nil {
		return nil, err
	}

	newName = domain.NormalizeName(newName)
	if newName == f.Name {
		return f, nil
	}
	if !domain.ValidName(newName) {
		fs.audit(mq.ScopeFile, actor, "rename", mq.OutcomeError, fmt.Sprintf("invalid filename %q", newName))
		return nil, ErrInvalidName
	}

	out, err := fs.fileRepository.RenameFile(ctx, f.ID, newName, func(locked *domain.File) error {
		if !fs.store.Exists(locked.Namespace(), locked.Name) {
			// payload already gone, rename metadata only
			return nil
		}
		return fs.store.Rename(locked.Namespace(), locked.Name, newName)
	})
	if err != nil {
		fs.audit(mq.ScopeFile, actor, "rename", mq.OutcomeError, err.Error())
		return nil, err
	}

	fs.audit(mq.ScopeFile, actor, "rename", mq.OutcomeOK, fmt.Sprintf("%s -> %s", f.Name, newName))

	return out, nil
}

func (fs *FileService) SetDescription(ctx context.Context, actor user.Actor, fileUUID uuid.UUID, text string) (*domain.File, error) {
	f, err := authorizedFile(ctx, fs.fileRepository, actor, fileUUID)
	if err != nil {
		return nil, err
	}

	out, err := fs.fileRepository.UpdateDescription(ctx, f.ID, domain.TruncateDescription(text))
	if err != nil {
		return nil, err
	}

	fs.audit(mq.ScopeFile, actor, "describe", mq.OutcomeOK, f.Name)

	return out, nil
}

// Delete removes links, payload and record in that order. A payload that
// is already missing does not block deletion; any other removal failure
// aborts and is surfaced.
func (fs *FileService) Delete(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) error {
	f, err := authorizedFile(ctx, fs.fileRepository, actor, fileUUID)
	if err != nil {
		return err
	}

	err = fs.fileRepository.DeleteFile(ctx, f.ID, func(locked *domain.File) error {
		rerr := fs.store.Remove(locked.Namespace(), locked.Name)
		if rerr != nil && os.IsNotExist(rerr) {
			return nil
		}
		return rerr
	})
	if err != nil {
		fs.audit(mq.ScopeFile, actor, "delete", mq.OutcomeError, err.Error())
		return err
	}

	fs.audit(mq.ScopeFile, actor, "delete", mq.OutcomeOK, f.Name)
	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

func (fs *FileService) Download(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) (io.ReadCloser, *domain.File, error) {
	f, err := authorizedFile(ctx, fs.fileRepository, actor, fileUUID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := fs.store.Open(f.Namespace(), f.Name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}

	if err = fs.fileRepository.IncrementDownloads(ctx, f.ID); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}
	f.Downloads++

	fs.audit(mq.ScopeFile, actor, "download", mq.OutcomeOK, f.Name)
	fs.mCounter.WithLabelValues("downloads_total").Inc()

	return rc, f, nil
}

func (fs *FileService) SizeOf(f *domain.File) int64 {
	return fs.store.Size(f.Namespace(), f.Name)
}

func (fs *FileService) audit(scope string, actor user.Actor, action, outcome, detail string) {
	fs.mq.GetInputChan() <- mq.NewEvent(scope, actor.UUID.String(), action, outcome, detail)
}
