package file

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain name", input: "report.pdf", want: true},
		{name: "spaces allowed", input: "my holiday photos.zip", want: true},
		{name: "unicode allowed", input: "отчёт-2024.txt", want: true},
		{name: "no extension", input: "README", want: true},
		{name: "leading dot ok", input: ".env", want: true},
		{name: "max length", input: strings.Repeat("a", 512), want: true},

		{name: "empty", input: "", want: false},
		{name: "too long", input: strings.Repeat("a", 513), want: false},
		{name: "trailing dot", input: "archive.", want: false},
		{name: "newline", input: "a\nb.txt", want: false},
		{name: "backslash", input: `dir\file.txt`, want: false},
		{name: "forward slash", input: "dir/file.txt", want: false},
		{name: "colon", input: "c:file.txt", want: false},
		{name: "asterisk", input: "file*.txt", want: false},
		{name: "question mark", input: "file?.txt", want: false},
		{name: "double quote", input: `say "hi".txt`, want: false},
		{name: "angle brackets", input: "<file>.txt", want: false},
		{name: "pipe", input: "a|b.txt", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.input))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	// NFD "é" (e + combining acute) must collapse into the NFC single rune
	// so both spellings hit the same stored name.
	nfd := "café.txt"
	nfc := "café.txt"

	assert.Equal(t, nfc, NormalizeName(nfd))
	assert.Equal(t, nfc, NormalizeName(nfc))
}

func TestTruncateDescription(t *testing.T) {
	assert.Equal(t, "short", TruncateDescription("short"))

	long := strings.Repeat("x", MaxDescriptionLen+100)
	got := TruncateDescription(long)
	assert.Len(t, got, MaxDescriptionLen)

	// multi-byte runes must not be split at the cut point
	wide := strings.Repeat("é", MaxDescriptionLen+100)
	got = TruncateDescription(wide)
	assert.True(t, utf8.ValidString(got), "truncated description must stay valid UTF-8")
	assert.Equal(t, MaxDescriptionLen, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("é", MaxDescriptionLen), got)

	exact := strings.Repeat("é", MaxDescriptionLen)
	assert.Equal(t, exact, TruncateDescription(exact))
}
