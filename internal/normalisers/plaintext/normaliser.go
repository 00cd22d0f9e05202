// Package plaintext extracts text files and is the fallback for unknown extensions.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

const byteOrderMark = "\uFEFF"

// Normaliser decodes bytes as UTF-8.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text"}
}

// Extract decodes content as UTF-8. Invalid byte sequences are replaced
// with U+FFFD instead of failing.
func (n *Normaliser) Extract(_ context.Context, content []byte) (string, error) {
	return Decode(content), nil
}

// Decode converts bytes to a valid UTF-8 string, dropping a leading byte
// order mark and replacing invalid sequences.
func Decode(content []byte) string {
	s := strings.TrimPrefix(string(content), byteOrderMark)
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
