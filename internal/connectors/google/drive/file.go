package drive

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"google.golang.org/api/drive/v3"
)

// Drive MIME types.
const (
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"
	MimeTypeFolder    = "application/vnd.google-apps.folder"
)

// ExportMimeText is the export format for Google Docs.
const ExportMimeText = "text/plain"

// MaxFileSize is the maximum size for downloaded or exported content (20MB).
const MaxFileSize = 20 * 1024 * 1024

// LocalName returns the file name a Drive file is saved under, or "" when the
// file should not be pulled. Google Docs gain a .txt suffix.
func LocalName(file *drive.File, cfg *Config) string {
	if file.Trashed || file.MimeType == MimeTypeFolder {
		return ""
	}

	name := safeName(file.Name)
	if name == "" {
		return ""
	}

	if file.MimeType == MimeTypeGoogleDoc {
		return strings.TrimSuffix(name, ".txt") + ".txt"
	}

	if strings.HasPrefix(file.MimeType, "application/vnd.google-apps.") {
		return ""
	}
	if file.Size > MaxFileSize || !cfg.HasExtension(path.Ext(name)) {
		return ""
	}
	return name
}

// Fetch returns the content of a file, exporting Google Docs to plain text.
func Fetch(ctx context.Context, svc *drive.Service, file *drive.File) ([]byte, error) {
	var body io.ReadCloser
	if file.MimeType == MimeTypeGoogleDoc {
		resp, err := svc.Files.Export(file.Id, ExportMimeText).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("export file: %w", err)
		}
		body = resp.Body
	} else {
		resp, err := svc.Files.Get(file.Id).SupportsAllDrives(true).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("download file: %w", err)
		}
		body = resp.Body
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	return data, nil
}

// safeName strips path separators so a Drive name cannot escape its
// category directory.
func safeName(name string) string {
	name = strings.TrimSpace(strings.NewReplacer("/", "_", "\\", "_").Replace(name))
	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return ""
	}
	return name
}
