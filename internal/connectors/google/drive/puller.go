package drive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/lexdraft/internal/connectors/google"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// Ensure SampleSource implements the interface.
var _ driven.SampleSource = (*SampleSource)(nil)

const listFields = googleapi.Field("nextPageToken, files(id, name, mimeType, size, trashed)")

// SampleSource pulls reference samples from a shared Drive folder.
// Every direct subfolder of the configured folder becomes one category
// directory in the local corpus.
type SampleSource struct {
	svc     *drive.Service
	cfg     *Config
	limiter *google.RateLimiter
}

// NewSampleSource creates a Drive sample source.
func NewSampleSource(svc *drive.Service, cfg *Config) *SampleSource {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	return &SampleSource{
		svc:     svc,
		cfg:     cfg,
		limiter: google.NewRateLimiter(cfg.RateLimit),
	}
}

// Pull downloads every supported file in every category folder into dir.
// Existing files with the same name are overwritten. A file that fails to
// download is logged and skipped; a failure to list folders aborts.
func (s *SampleSource) Pull(ctx context.Context, dir string) (int, error) {
	if s.cfg.FolderID == "" {
		return 0, fmt.Errorf("%w: drive folder id is required", domain.ErrInvalidInput)
	}

	folders, err := s.list(ctx, fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false",
		s.cfg.FolderID, MimeTypeFolder))
	if err != nil {
		return 0, fmt.Errorf("list category folders: %w", err)
	}
	if len(folders) == 0 {
		logger.Warn("Drive folder %s has no category subfolders", s.cfg.FolderID)
	}

	written := 0
	for _, folder := range folders {
		category := safeName(folder.Name)
		if category == "" {
			continue
		}

		files, err := s.list(ctx, fmt.Sprintf("'%s' in parents and trashed = false", folder.Id))
		if err != nil {
			return written, fmt.Errorf("list folder %q: %w", folder.Name, err)
		}

		n, err := s.pullFolder(ctx, files, filepath.Join(dir, category))
		written += n
		if err != nil {
			return written, err
		}
		logger.Info("Pulled %d samples into %s", n, category)
	}

	return written, nil
}

func (s *SampleSource) pullFolder(ctx context.Context, files []*drive.File, dest string) (int, error) {
	written := 0
	for _, f := range files {
		name := LocalName(f, s.cfg)
		if name == "" {
			logger.Debug("Skipping %q (%s)", f.Name, f.MimeType)
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return written, err
		}
		data, err := Fetch(ctx, s.svc, f)
		if err != nil {
			if google.IsRateLimited(err) {
				s.limiter.RecordRateLimitError(0)
			}
			logger.Warn("Skipping %q: %v", f.Name, google.WrapError(err))
			continue
		}

		if err := os.MkdirAll(dest, 0750); err != nil {
			return written, fmt.Errorf("create category directory: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dest, name), data, 0600); err != nil {
			return written, fmt.Errorf("write sample %q: %w", name, err)
		}
		written++
	}
	return written, nil
}

// list returns every file matching q, following pagination.
func (s *SampleSource) list(ctx context.Context, q string) ([]*drive.File, error) {
	var (
		out   []*drive.File
		token string
	)
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.Files.List().
			Q(q).
			Fields(listFields).
			PageSize(s.cfg.PageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}

		resp, err := call.Do()
		if err != nil {
			if google.IsRateLimited(err) {
				s.limiter.RecordRateLimitError(0)
			}
			return nil, google.WrapError(err)
		}

		out = append(out, resp.Files...)
		if resp.NextPageToken == "" {
			return out, nil
		}
		token = resp.NextPageToken
	}
}

// IsAuthError reports whether err means the credentials cannot read the folder.
func IsAuthError(err error) bool {
	return errors.Is(err, google.ErrUnauthorized) || errors.Is(err, google.ErrForbidden)
}
