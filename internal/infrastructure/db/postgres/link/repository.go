package link

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/link"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/db/postgres"
)

var ErrHrefTaken = errors.New("link href already exists")

// DB is the slice of the pool the repository uses; pgxmock satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) link.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchLinkByHref(ctx context.Context, href string) (*link.Link, error) {
	l := new(Link)
	err := r.db.QueryRow(ctx, SelectLinkByHref, href).Scan(
		&l.ID,
		&l.Href,

		&l.FileID,
		&l.FileUUID,
		&l.FileName,
		&l.OwnerID,
		&l.OwnerUUID,

		&l.CreatedAt,
		&l.ExpireAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(l), err
}

func (r *Repository) FetchLinksByFile(ctx context.Context, fileID file.ID) (link.Links, error) {
	rows, err := r.db.Query(ctx, SelectLinksByFile, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ls Links
	for rows.Next() {
		l := new(Link)

		if err = rows.Scan(
			&l.ID,
			&l.Href,

			&l.FileID,
			&l.FileUUID,
			&l.FileName,
			&l.OwnerID,
			&l.OwnerUUID,

			&l.CreatedAt,
			&l.ExpireAt,
		); err != nil {
			return nil, err
		}

		ls = append(ls, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ls), nil
}

func (r *Repository) CreateLink(ctx context.Context, fileID file.ID, href string, expireAt *time.Time) (*link.Link, error) {
	l := new(Link)

	err := r.db.QueryRow(
		ctx,
		InsertLink,
		fileID, href, expireAt,
	).Scan(
		&l.ID,
		&l.Href,
		&l.FileID,
		&l.CreatedAt,
		&l.ExpireAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrHrefTaken
		}
		return nil, err
	}

	return fromDBModel(l), err
}

func (r *Repository) DeleteLink(ctx context.Context, id link.ID) error {
	_, err := r.db.Exec(ctx, DeleteLinkByID, id)
	return err
}

func (r *Repository) DeleteLinksByFile(ctx context.Context, fileID file.ID) error {
	_, err := r.db.Exec(ctx, DeleteLinksByFileID, fileID)
	return err
}

func (r *Repository) DeleteExpiredByOwner(ctx context.Context, ownerID user.ID) error {
	_, err := r.db.Exec(ctx, DeleteExpiredLinksByOwner, ownerID)
	return err
}
