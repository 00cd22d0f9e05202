package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs files through extraction, chunking and embedding.
type IngestService struct {
	store     *VectorStore
	extractor driven.ExtractorRegistry
	pipeline  driven.PostProcessorPipeline
	workers   int
}

// NewIngestService creates an ingestion service. workers bounds concurrent
// extraction; values below one use domain.DefaultIngestWorkers.
func NewIngestService(
	store *VectorStore,
	extractor driven.ExtractorRegistry,
	pipeline driven.PostProcessorPipeline,
	workers int,
) *IngestService {
	if workers < 1 {
		workers = domain.DefaultIngestWorkers
	}
	return &IngestService{
		store:     store,
		extractor: extractor,
		pipeline:  pipeline,
		workers:   workers,
	}
}

// Ingest extracts files concurrently and stores their chunks in partition.
func (s *IngestService) Ingest(ctx context.Context, files []domain.UploadedFile, p domain.Partition) (int, error) {
	names, err := s.IngestFiles(ctx, files, p)
	return len(names), err
}

// IngestFiles extracts files concurrently, stores their chunks in partition
// and returns the names of the files that were stored.
func (s *IngestService) IngestFiles(ctx context.Context, files []domain.UploadedFile, p domain.Partition) ([]string, error) {
	logger.Section("Ingest")
	if _, err := s.store.Partition(p); err != nil {
		return nil, err
	}

	docs, err := s.extractAll(ctx, len(files), func(ctx context.Context, i int) (*domain.Document, error) {
		return s.extract(ctx, files[i])
	})
	if err != nil {
		return nil, err
	}
	return s.storeDocuments(ctx, docs, p)
}

// IngestDocuments chunks and stores already extracted documents. Documents
// are processed in order. A document counts as ingested when at least one
// of its chunks was stored.
func (s *IngestService) IngestDocuments(ctx context.Context, docs []domain.Document, p domain.Partition) (int, error) {
	if _, err := s.store.Partition(p); err != nil {
		return 0, err
	}
	names, err := s.storeDocuments(ctx, docs, p)
	return len(names), err
}

// storeDocuments chunks and stores docs in order and returns the source
// names of those with at least one stored chunk.
func (s *IngestService) storeDocuments(ctx context.Context, docs []domain.Document, p domain.Partition) ([]string, error) {
	var names []string
	for i := range docs {
		doc := &docs[i]
		chunks, err := s.pipeline.Process(ctx, doc)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidChunkConfig) {
				return names, err
			}
			logger.Warn("Skipping %q: chunking failed: %v", doc.SourceName, err)
			continue
		}
		if len(chunks) == 0 {
			logger.Warn("Skipping %q: no text extracted", doc.SourceName)
			continue
		}

		stored, err := s.store.Ingest(ctx, p, chunks)
		if err != nil {
			return names, fmt.Errorf("ingest %q: %w", doc.SourceName, err)
		}
		if stored > 0 {
			names = append(names, doc.SourceName)
		}
		logger.Info("Ingested %q into %s: %d/%d chunks", doc.SourceName, p, stored, len(chunks))
	}
	return names, nil
}

// IngestPaths reads files and walks directories, then ingests everything
// found. Hidden files and directories are skipped. Within a directory the
// source name is the slash separated path relative to that directory.
func (s *IngestService) IngestPaths(ctx context.Context, paths []string, p domain.Partition, category string) (int, error) {
	if _, err := s.store.Partition(p); err != nil {
		return 0, err
	}

	type pending struct {
		path string
		name string
	}
	var found []pending
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if !info.IsDir() {
			found = append(found, pending{path: root, name: filepath.Base(root)})
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			found = append(found, pending{path: path, name: filepath.ToSlash(rel)})
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	logger.Debug("Found %d files to ingest", len(found))

	docs, err := s.extractAll(ctx, len(found), func(ctx context.Context, i int) (*domain.Document, error) {
		content, err := os.ReadFile(found[i].path)
		if err != nil {
			return nil, err
		}
		return s.extract(ctx, domain.UploadedFile{Name: found[i].name, Content: content, Category: category})
	})
	if err != nil {
		return 0, err
	}
	return s.IngestDocuments(ctx, docs, p)
}

// extract converts one upload into a document.
func (s *IngestService) extract(ctx context.Context, f domain.UploadedFile) (*domain.Document, error) {
	text, err := s.extractor.Extract(ctx, f.Content, f.Extension())
	if err != nil {
		return nil, fmt.Errorf("%q: %w", f.Name, err)
	}
	return &domain.Document{
		SourceName: f.Name,
		RawText:    text,
		Category:   domain.NormaliseCategory(f.Category),
	}, nil
}

// extractAll runs fn for n inputs with bounded concurrency. Failed inputs
// are logged and skipped; the order of the surviving documents is kept.
func (s *IngestService) extractAll(
	ctx context.Context, n int, fn func(ctx context.Context, i int) (*domain.Document, error),
) ([]domain.Document, error) {
	results := make([]*domain.Document, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := fn(gctx, i)
			if err != nil {
				logger.Warn("Skipping file: %v", err)
				return nil
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, n)
	for _, d := range results {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	return docs, nil
}
