package domain

import (
	"path/filepath"
	"strings"
)

// UploadedFile is an opaque file handed to ingestion.
type UploadedFile struct {
	// Name is the original file name. Its extension selects the extractor.
	Name string

	// Content is the raw bytes.
	Content []byte

	// Category optionally tags every chunk of this file.
	Category string
}

// Extension returns the lowercased extension of the file name, including the dot.
func (f UploadedFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}
