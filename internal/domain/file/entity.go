package file

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/user"
)

const (
	// MaxDescriptionLen mirrors the storage column bound; longer texts are truncated.
	MaxDescriptionLen = 511
)

type (
	ID   uint64
	File struct {
		ID   ID
		UUID uuid.UUID

		OwnerID user.ID
		// OwnerUUID keys the on-disk namespace. Usernames are mutable and
		// never appear in storage paths.
		OwnerUUID user.UUID

		Name        string
		Description string
		Downloads   int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)

// Namespace is the per-owner storage subdirectory the payload lives in.
func (f *File) Namespace() string { return f.OwnerUUID.String() }

// TruncateDescription cuts on rune boundaries; a byte slice could split a
// multi-byte rune and produce invalid UTF-8 the database would reject.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLen {
		return s
	}
	return string([]rune(s)[:MaxDescriptionLen])
}
