package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store keeps payloads on a single filesystem root, one subdirectory per
// owner namespace, each file under its current name.
type Store struct {
	logger *zap.Logger
	root   string
}

func New(logger *zap.Logger, root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	logger.Info("storage root ready", zap.String("dir", root))

	return &Store{
		logger: logger,
		root:   root,
	}, nil
}

func (s *Store) path(namespace, name string) string {
	return filepath.Join(s.root, namespace, name)
}

func (s *Store) Save(namespace, name string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Join(s.root, namespace), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(s.path(namespace, name))
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}

	return n, nil
}

func (s *Store) Open(namespace, name string) (io.ReadCloser, error) {
	return os.Open(s.path(namespace, name))
}

// Rename moves a payload within its namespace. An untracked leftover file
// at the destination is overwritten, matching record-level semantics where
// only tracked names count as collisions.
func (s *Store) Rename(namespace, oldName, newName string) error {
	dst := s.path(namespace, newName)
	if _, err := os.Stat(dst); err == nil {
		if err = os.Remove(dst); err != nil {
			return err
		}
	}
	return os.Rename(s.path(namespace, oldName), dst)
}

func (s *Store) Remove(namespace, name string) error {
	return os.Remove(s.path(namespace, name))
}

// RemoveNamespace deletes an owner's directory. The directory must be
// empty; a leftover entry is surfaced as an error rather than ignored.
func (s *Store) RemoveNamespace(namespace string) error {
	err := os.Remove(filepath.Join(s.root, namespace))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Size returns the payload's on-disk size, or -1 when the payload is
// missing so callers can show a degraded-but-present record.
func (s *Store) Size(namespace, name string) int64 {
	fi, err := os.Stat(s.path(namespace, name))
	if err != nil {
		return -1
	}
	return fi.Size()
}

func (s *Store) Exists(namespace, name string) bool {
	_, err := os.Stat(s.path(namespace, name))
	return err == nil
}
