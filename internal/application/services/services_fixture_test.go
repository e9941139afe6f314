package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/link"
	"file-storage-api/internal/domain/user"
	fileDB "file-storage-api/internal/infrastructure/db/postgres/file"
	linkDB "file-storage-api/internal/infrastructure/db/postgres/link"
	"file-storage-api/internal/infrastructure/mq"
	"file-storage-api/internal/infrastructure/storage"
)

// fakeAudit swallows events the way the real publisher worker would.
type fakeAudit struct {
	ch chan mq.Event
}

func newFakeAudit() *fakeAudit {
	return &fakeAudit{ch: make(chan mq.Event, 256)}
}

func (f *fakeAudit) GetInputChan() chan mq.Event { return f.ch }

type memUserRepo struct {
	mu    sync.Mutex
	seq   user.ID
	users map[user.UUID]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[user.UUID]*user.User)}
}

func (r *memUserRepo) add(username, role string) *user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u := &user.User{
		ID:       r.seq,
		UUID:     uuid.New(),
		Username: username,
		Role:     role,
	}
	r.users[u.UUID] = u
	return u
}

func (r *memUserRepo) FetchUserByUUID(_ context.Context, id user.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) FetchUserByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FetchUsers(_ context.Context, _ int) (user.Users, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(user.Users, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	req.ID = r.seq
	req.UUID = uuid.New()
	r.users[req.UUID] = &req
	cp := req
	return &cp, nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[req.UUID]; ok {
		u.Username = req.Username
		u.Email = req.Email
		u.FirstName = req.FirstName
		u.LastName = req.LastName
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id user.ID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = &hash
		}
	}
	return nil
}

func (r *memUserRepo) FetchInternalID(_ context.Context, id user.UUID) (user.ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u.ID, nil
	}
	return 0, nil
}

func (r *memUserRepo) DeleteUser(_ context.Context, id user.ID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, u := range r.users {
		if u.ID == id {
			cp := *u
			delete(r.users, k)
			return &cp, nil
		}
	}
	return nil, nil
}

type memFileRepo struct {
	mu    sync.Mutex
	seq   file.ID
	files map[file.ID]*file.File
	links *memLinkRepo
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{files: make(map[file.ID]*file.File)}
}

func (r *memFileRepo) byName(ownerID user.ID, name string) *file.File {
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.Name == name {
			return f
		}
	}
	return nil
}

func (r *memFileRepo) FetchFiles(_ context.Context, ownerID user.ID) (file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(file.Files, 0)
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memFileRepo) FetchFileByUUID(_ context.Context, id uuid.UUID) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.UUID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memFileRepo) FetchFileByName(_ context.Context, ownerID user.ID, name string) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f := r.byName(ownerID, name); f != nil {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *memFileRepo) CreateFile(_ context.Context, req *file.File) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byName(req.OwnerID, req.Name) != nil {
		return nil, fileDB.ErrNameAlreadyExists
	}
	r.seq++
	cp := *req
	cp.ID = r.seq
	cp.UUID = uuid.New()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.files[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memFileRepo) RenameFile(_ context.Context, id file.ID, newName string, move func(f *file.File) error) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, fileDB.ErrFileMissing
	}
	if other := r.byName(f.OwnerID, newName); other != nil && other.ID != id {
		return nil, fileDB.ErrNameAlreadyExists
	}
	locked := *f
	if err := move(&locked); err != nil {
		return nil, err
	}
	f.Name = newName
	f.UpdatedAt = time.Now().UTC()
	cp := *f
	return &cp, nil
}

func (r *memFileRepo) OverwriteFile(_ context.Context, id file.ID, description string, write func(f *file.File) error) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, fileDB.ErrFileMissing
	}
	locked := *f
	if err := write(&locked); err != nil {
		return nil, err
	}
	f.Downloads = 0
	if description != "" {
		f.Description = description
	}
	f.UpdatedAt = time.Now().UTC()
	if r.links != nil {
		r.links.dropByFile(id)
	}
	cp := *f
	return &cp, nil
}

func (r *memFileRepo) UpdateDescription(_ context.Context, id file.ID, description string) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, fileDB.ErrFileMissing
	}
	f.Description = description
	f.UpdatedAt = time.Now().UTC()
	cp := *f
	return &cp, nil
}

func (r *memFileRepo) DeleteFile(_ context.Context, id file.ID, remove func(f *file.File) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return fileDB.ErrFileMissing
	}
	locked := *f
	if err := remove(&locked); err != nil {
		return err
	}
	if r.links != nil {
		r.links.dropByFile(id)
	}
	delete(r.files, id)
	return nil
}

func (r *memFileRepo) DeleteFilesByOwner(ctx context.Context, ownerID user.ID, remove func(f *file.File) error) (int, error) {
	r.mu.Lock()
	ids := make([]file.ID, 0)
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			ids = append(ids, f.ID)
		}
	}
	r.mu.Unlock()

	for _, id := range ids {
		if err := r.DeleteFile(ctx, id, remove); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

func (r *memFileRepo) IncrementDownloads(_ context.Context, id file.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.files[id]; ok {
		f.Downloads++
	}
	return nil
}

type memLinkRepo struct {
	mu    sync.Mutex
	seq   link.ID
	links map[link.ID]*link.Link
	files *memFileRepo
}

func newMemLinkRepo(files *memFileRepo) *memLinkRepo {
	r := &memLinkRepo{links: make(map[link.ID]*link.Link), files: files}
	files.links = r
	return r
}

func (r *memLinkRepo) dropByFile(fileID file.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.links {
		if l.FileID == fileID {
			delete(r.links, id)
		}
	}
}

// fill resolves the joined display fields the SQL repository reads in one
// query.
func (r *memLinkRepo) fill(l *link.Link) {
	r.files.mu.Lock()
	defer r.files.mu.Unlock()
	if f, ok := r.files.files[l.FileID]; ok {
		l.FileUUID = f.UUID
		l.FileName = f.Name
		l.OwnerID = f.OwnerID
		l.OwnerUUID = f.OwnerUUID
	}
}

func (r *memLinkRepo) FetchLinkByHref(_ context.Context, href string) (*link.Link, error) {
	r.mu.Lock()
	var cp *link.Link
	for _, l := range r.links {
		if l.Href == href {
			c := *l
			cp = &c
			break
		}
	}
	r.mu.Unlock()
	if cp == nil {
		return nil, nil
	}
	r.fill(cp)
	return cp, nil
}

func (r *memLinkRepo) FetchLinksByFile(_ context.Context, fileID file.ID) (link.Links, error) {
	r.mu.Lock()
	cps := make(link.Links, 0)
	for _, l := range r.links {
		if l.FileID == fileID {
			cp := *l
			cps = append(cps, &cp)
		}
	}
	r.mu.Unlock()
	for _, cp := range cps {
		r.fill(cp)
	}
	return cps, nil
}

func (r *memLinkRepo) CreateLink(_ context.Context, fileID file.ID, href string, expireAt *time.Time) (*link.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.links {
		if l.Href == href {
			return nil, linkDB.ErrHrefTaken
		}
	}
	r.seq++
	l := &link.Link{
		ID:        r.seq,
		Href:      href,
		FileID:    fileID,
		CreatedAt: time.Now().UTC(),
		ExpireAt:  expireAt,
	}
	r.links[l.ID] = l
	cp := *l
	return &cp, nil
}

func (r *memLinkRepo) DeleteLink(_ context.Context, id link.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.links, id)
	return nil
}

func (r *memLinkRepo) DeleteLinksByFile(_ context.Context, fileID file.ID) error {
	r.dropByFile(fileID)
	return nil
}

func (r *memLinkRepo) DeleteExpiredByOwner(_ context.Context, ownerID user.ID) error {
	owned := make(map[file.ID]bool)
	r.files.mu.Lock()
	for id, f := range r.files.files {
		if f.OwnerID == ownerID {
			owned[id] = true
		}
	}
	r.files.mu.Unlock()

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.links {
		if owned[l.FileID] && l.ExpireAt != nil && l.ExpireAt.Before(now) {
			delete(r.links, id)
		}
	}
	return nil
}

const testBaseURL = "http://localhost:8080"

type svcFixture struct {
	root    string
	store   *storage.Store
	users   *memUserRepo
	files   *memFileRepo
	links   *memLinkRepo
	audit   *fakeAudit
	counter *prometheus.CounterVec

	fileSvc ports.FileService
	linkSvc ports.LinkService
	userSvc ports.UserService
}

func newSvcFixture(t *testing.T) *svcFixture {
	t.Helper()

	root := t.TempDir()
	store, err := storage.New(zap.NewNop(), root)
	require.NoError(t, err)

	users := newMemUserRepo()
	files := newMemFileRepo()
	links := newMemLinkRepo(files)
	audit := newFakeAudit()
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_general_counters"},
		[]string{"result"},
	)

	return &svcFixture{
		root:    root,
		store:   store,
		users:   users,
		files:   files,
		links:   links,
		audit:   audit,
		counter: counter,
		fileSvc: NewFileService(store, files, users, audit, counter),
		linkSvc: NewLinkService(store, links, files, users, testBaseURL, audit, counter),
		userSvc: NewUserService(store, users, files, audit, counter),
	}
}

func (fx *svcFixture) actor(t *testing.T, username, role string) user.Actor {
	t.Helper()
	u := fx.users.add(username, role)
	return user.Actor{UUID: u.UUID, Role: u.Role}
}
