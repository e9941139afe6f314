package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/db/postgres"
)

var (
	ErrNameAlreadyExists = errors.New("file name already exists")
	ErrFileMissing       = errors.New("file record not found")
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) file.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFiles(ctx context.Context, ownerID user.ID) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectFilesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = scanFile(rows, f); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFileByUUID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	f := new(File)
	err := scanFile(r.db.QueryRow(ctx, SelectFileByUUID, id.String()), f)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) FetchFileByName(ctx context.Context, ownerID user.ID, name string) (*file.File, error) {
	f := new(File)
	err := scanFile(r.db.QueryRow(ctx, SelectFileByName, ownerID, name), f)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	f := new(File)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.OwnerID, req.Name, req.Description,
	).Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerID,

		&f.Name,
		&f.Description,
		&f.Downloads,

		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrNameAlreadyExists
		}
		return nil, err
	}

	// InsertFile cannot return the joined owner uuid; the caller knows it.
	f.OwnerUUID = req.OwnerUUID

	return fromDBModel(f), err
}

// RenameFile serializes with every other mutation of the same record via the
// row lock. The metadata update happens first inside the transaction, so a
// failed filesystem move rolls it back and name/path stay in sync.
func (r *Repository) RenameFile(ctx context.Context, id file.ID, newName string, move func(f *file.File) error) (*file.File, error) {
	var out *file.File

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		f, err := lockFile(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err = tx.Exec(ctx, UpdateFileName, id, newName); err != nil {
			if postgres.IsPgUniqueViolation(err) {
				return ErrNameAlreadyExists
			}
			return err
		}

		// f still carries the old name for the move.
		if err = move(fromDBModel(f)); err != nil {
			return err
		}

		f.Name = newName
		out = fromDBModel(f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) OverwriteFile(ctx context.Context, id file.ID, description string, write func(f *file.File) error) (*file.File, error) {
	var out *file.File

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		f, err := lockFile(ctx, tx, id)
		if err != nil {
			return err
		}

		// Overwriting invalidates every outstanding share.
		if _, err = tx.Exec(ctx, DeleteLinksByFileID, id); err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, ResetFileForOverwrite, id, description); err != nil {
			return err
		}

		if err = write(fromDBModel(f)); err != nil {
			return err
		}

		f.Downloads = 0
		if description != "" {
			f.Description = description
		}
		out = fromDBModel(f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) UpdateDescription(ctx context.Context, id file.ID, description string) (*file.File, error) {
	var out *file.File

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		f, err := lockFile(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err = tx.Exec(ctx, UpdateFileDescription, id, description); err != nil {
			return err
		}

		f.Description = description
		out = fromDBModel(f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteFile removes links, payload and record in that order. A failed
// payload removal aborts the transaction so no dangling record survives
// pointing at nothing, and no record vanishes while its payload stays.
func (r *Repository) DeleteFile(ctx context.Context, id file.ID, remove func(f *file.File) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		f, err := lockFile(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err = tx.Exec(ctx, DeleteLinksByFileID, id); err != nil {
			return err
		}

		if err = remove(fromDBModel(f)); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, DeleteFileByID, id)
		return err
	})
}

func (r *Repository) DeleteFilesByOwner(ctx context.Context, ownerID user.ID, remove func(f *file.File) error) (int, error) {
	var count int

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, SelectFilesByOwnerForUpdate, ownerID)
		if err != nil {
			return err
		}

		var fs Files
		for rows.Next() {
			f := new(File)
			if err = scanFile(rows, f); err != nil {
				rows.Close()
				return err
			}
			fs = append(fs, f)
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return err
		}

		if _, err = tx.Exec(ctx, DeleteLinksByOwnerID, ownerID); err != nil {
			return err
		}

		for _, f := range fs {
			if err = remove(fromDBModel(f)); err != nil {
				return err
			}
		}

		if _, err = tx.Exec(ctx, DeleteFilesByOwnerID, ownerID); err != nil {
			return err
		}

		count = len(fs)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) IncrementDownloads(ctx context.Context, id file.ID) error {
	_, err := r.db.Exec(ctx, IncrementFileDownloads, id)
	return err
}

func lockFile(ctx context.Context, tx pgx.Tx, id file.ID) (*File, error) {
	f := new(File)
	if err := scanFile(tx.QueryRow(ctx, SelectFileForUpdate, id), f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileMissing
		}
		return nil, err
	}
	return f, nil
}

func scanFile(row pgx.Row, f *File) error {
	return row.Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerID,
		&f.OwnerUUID,

		&f.Name,
		&f.Description,
		&f.Downloads,

		&f.CreatedAt,
		&f.UpdatedAt,
	)
}
