package ports

import "io"

// BlobStore is the byte-level backend: payloads addressed by an owner
// namespace and the file's current name.
type BlobStore interface {
	Save(namespace, name string, r io.Reader) (int64, error)
	Open(namespace, name string) (io.ReadCloser, error)
	Rename(namespace, oldName, newName string) error
	Remove(namespace, name string) error
	RemoveNamespace(namespace string) error
	// Size returns -1 when the payload is missing from the backend.
	Size(namespace, name string) int64
	Exists(namespace, name string) bool
}
