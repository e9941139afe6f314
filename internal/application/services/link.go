package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/domain/file"
	domain "file-storage-api/internal/domain/link"
	"file-storage-api/internal/domain/user"
	linkDB "file-storage-api/internal/infrastructure/db/postgres/link"
	"file-storage-api/internal/infrastructure/mq"
)

const (
	// 12 bytes of entropy, 16 chars after url-safe encoding. Enough to
	// make token enumeration infeasible.
	hrefEntropyBytes = 12
	hrefMaxAttempts  = 3
)

type LinkService struct {
	store          ports.BlobStore
	linkRepository domain.Repository
	fileRepository file.Repository
	userRepository user.Repository
	baseURL        string
	mq             ports.AuditPublisher
	mCounter       *prometheus.CounterVec
}

func NewLinkService(
	store ports.BlobStore,
	linkRepository domain.Repository,
	fileRepository file.Repository,
	userRepository user.Repository,
	baseURL string,
	mq ports.AuditPublisher,
	mCounter *prometheus.CounterVec,
) ports.LinkService {
	return &LinkService{
		store:          store,
		linkRepository: linkRepository,
		fileRepository: fileRepository,
		userRepository: userRepository,
		baseURL:        strings.TrimRight(baseURL, "/"),
		mq:             mq,
		mCounter:       mCounter,
	}
}

// CreateLink mints a bearer token for one file. Only a strictly positive
// duration sets an expiry; zero or negative means the link never expires.
func (ls *LinkService) CreateLink(ctx context.Context, actor user.Actor, fileUUID uuid.UUID, durationMinutes int) (*domain.Link, error) {
	f, err := authorizedFile(ctx, ls.fileRepository, actor, fileUUID)
	if err != nil {
		return nil, err
	}
	if !ls.store.Exists(f.Namespace(), f.Name) {
		// no shares for records whose payload is gone
		return nil, ErrFileNotFound
	}

	var expireAt *time.Time
	if durationMinutes > 0 {
		t := time.Now().UTC().Add(time.Duration(durationMinutes) * time.Minute)
		expireAt = &t
	}

	var l *domain.Link
	for attempt := 0; attempt < hrefMaxAttempts; attempt++ {
		href, herr := generateHref()
		if herr != nil {
			return nil, herr
		}
		l, err = ls.linkRepository.CreateLink(ctx, f.ID, href, expireAt)
		if err == nil {
			break
		}
		if !errors.Is(err, linkDB.ErrHrefTaken) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	l.FileUUID = f.UUID
	l.FileName = f.Name
	l.OwnerID = f.OwnerID
	l.OwnerUUID = f.OwnerUUID

	ls.audit(actor, "link_create", mq.OutcomeOK, f.Name)
	ls.mCounter.WithLabelValues("links_created_total").Inc()

	return l, nil
}

func (ls *LinkService) FindFileLinks(ctx context.Context, actor user.Actor, fileUUID uuid.UUID) (domain.Links, error) {
	f, err := authorizedFile(ctx, ls.fileRepository, actor, fileUUID)
	if err != nil {
		return nil, err
	}

	return ls.linkRepository.FetchLinksByFile(ctx, f.ID)
}

func (ls *LinkService) DeleteLink(ctx context.Context, actor user.Actor, href string) error {
	l, err := ls.linkRepository.FetchLinkByHref(ctx, href)
	if err != nil {
		return err
	}
	if l == nil || (!actor.IsAdmin() && l.OwnerUUID != actor.UUID) {
		return ErrLinkNotFound
	}

	if err = ls.linkRepository.DeleteLink(ctx, l.ID); err != nil {
		return err
	}

	ls.audit(actor, "link_delete", mq.OutcomeOK, l.FileName)

	return nil
}

// DownloadByLink bypasses the ownership guard: possessing a valid,
// unexpired token is the credential. The file's shared download counter
// still moves.
func (ls *LinkService) DownloadByLink(ctx context.Context, href string) (io.ReadCloser, *domain.Link, error) {
	l, err := ls.linkRepository.FetchLinkByHref(ctx, href)
	if err != nil {
		return nil, nil, err
	}
	if l == nil {
		return nil, nil, ErrLinkNotFound
	}
	if l.Expired() {
		return nil, nil, ErrLinkExpired
	}

	rc, err := ls.store.Open(l.OwnerUUID.String(), l.FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}

	if err = ls.fileRepository.IncrementDownloads(ctx, l.FileID); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}

	ls.mq.GetInputChan() <- mq.NewEvent(mq.ScopeLink, "link:"+href, "download", mq.OutcomeOK, l.FileName)
	ls.mCounter.WithLabelValues("link_downloads_total").Inc()

	return rc, l, nil
}

func (ls *LinkService) PurgeExpired(ctx context.Context, uuid user.UUID) error {
	id, err := ls.userRepository.FetchInternalID(ctx, uuid)
	if err != nil {
		return err
	}

	return ls.linkRepository.DeleteExpiredByOwner(ctx, id)
}

func (ls *LinkService) ShareURL(l *domain.Link) string {
	return fmt.Sprintf("%s/api/v1/get?link=%s", ls.baseURL, l.Href)
}

func (ls *LinkService) SizeOf(l *domain.Link) int64 {
	return ls.store.Size(l.OwnerUUID.String(), l.FileName)
}

func (ls *LinkService) audit(actor user.Actor, action, outcome, detail string) {
	ls.mq.GetInputChan() <- mq.NewEvent(mq.ScopeLink, actor.UUID.String(), action, outcome, detail)
}

func generateHref() (string, error) {
	b := make([]byte, hrefEntropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
