package file

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxNameLen = 512

// Characters that break filesystems or enable path traversal.
const forbiddenNameChars = "\n\\/:*?\"<>|"

// NormalizeName brings a filename to NFC form so that NFC/NFD variants of
// the same visible name cannot coexist inside one owner namespace.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// ValidName reports whether a filename may be stored. Names must be
// non-empty, at most 512 bytes, contain none of the forbidden characters
// and not end in a literal dot.
func ValidName(name string) bool {
	if name == "" || len(name) > maxNameLen {
		return false
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return false
	}
	return !strings.HasSuffix(name, ".")
}
