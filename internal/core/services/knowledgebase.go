package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// Ensure KnowledgeBaseService implements the interface.
var _ driving.KnowledgeBaseService = (*KnowledgeBaseService)(nil)

// importBatch is the number of entries upserted per write during import.
const importBatch = 256

// snapshotEntry is one line of an exported snapshot.
type snapshotEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Category  string    `json:"category,omitempty"`
	Embedding []float32 `json:"embedding"`
	CreatedAt time.Time `json:"created_at"`
}

// KnowledgeBaseService administers the dual store.
type KnowledgeBaseService struct {
	store   *VectorStore
	ingest  driving.IngestService
	samples driven.SampleCorpus
}

// NewKnowledgeBaseService creates the service. samples may be nil, which
// disables seeding.
func NewKnowledgeBaseService(store *VectorStore, ingest driving.IngestService, samples driven.SampleCorpus) *KnowledgeBaseService {
	return &KnowledgeBaseService{store: store, ingest: ingest, samples: samples}
}

// Stats summarises both partitions. An unavailable partition reports zero
// entries.
func (s *KnowledgeBaseService) Stats(ctx context.Context) (*domain.KnowledgeBaseStats, error) {
	stats := &domain.KnowledgeBaseStats{
		Permanent: domain.PartitionStats{Partition: domain.PartitionPermanent},
		Temporary: domain.PartitionStats{Partition: domain.PartitionTemporary},
	}
	for _, p := range domain.Partitions() {
		part, err := s.store.Partition(p)
		if err != nil {
			logger.Warn("%v", err)
			continue
		}
		ps, err := part.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("stats for %s partition: %w", p, err)
		}
		if p == domain.PartitionPermanent {
			stats.Permanent = ps
		} else {
			stats.Temporary = ps
		}
	}
	return stats, nil
}

// Clear removes every entry of one partition.
func (s *KnowledgeBaseService) Clear(ctx context.Context, p domain.Partition) error {
	part, err := s.store.Partition(p)
	if err != nil {
		return err
	}
	if err := part.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s partition: %w", p, err)
	}
	logger.Info("Cleared %s partition", p)
	return nil
}

// Export writes partition as zstd compressed JSON lines.
func (s *KnowledgeBaseService) Export(ctx context.Context, p domain.Partition, w io.Writer) (int, error) {
	part, err := s.store.Partition(p)
	if err != nil {
		return 0, err
	}
	entries, err := part.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("read %s partition: %w", p, err)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("create compressor: %w", err)
	}
	enc := json.NewEncoder(zw)
	for _, e := range entries {
		if err := enc.Encode(snapshotEntry(e)); err != nil {
			zw.Close()
			return 0, fmt.Errorf("encode entry %s: %w", e.ID, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("flush snapshot: %w", err)
	}
	return len(entries), nil
}

// Import reads a snapshot written by Export and upserts it into partition.
func (s *KnowledgeBaseService) Import(ctx context.Context, p domain.Partition, r io.Reader) (int, error) {
	part, err := s.store.Partition(p)
	if err != nil {
		return 0, err
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("open snapshot: %w", err)
	}
	defer zr.Close()

	dec := json.NewDecoder(bufio.NewReader(zr))
	batch := make([]domain.StoreEntry, 0, importBatch)
	total := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := part.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("%w: upsert into %s: %v", domain.ErrStoreUnavailable, p, err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		var se snapshotEntry
		err := dec.Decode(&se)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, fmt.Errorf("%w: decode snapshot line %d: %v", domain.ErrInvalidInput, total+len(batch)+1, err)
		}
		if se.ID == "" || len(se.Embedding) == 0 {
			return total, fmt.Errorf("%w: snapshot entry %d has no id or embedding", domain.ErrInvalidInput, total+len(batch)+1)
		}
		batch = append(batch, domain.StoreEntry(se))
		if len(batch) == importBatch {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	logger.Info("Imported %d entries into %s partition", total, p)
	return total, nil
}

// Seed ingests the sample corpus into the permanent partition. Each sample
// is tagged with its folder category and named "Sample <Category> - <file>".
// Samples that cannot be read are skipped.
func (s *KnowledgeBaseService) Seed(ctx context.Context) (int, error) {
	logger.Section("Seed")
	if s.samples == nil {
		return 0, fmt.Errorf("%w: no sample corpus configured", domain.ErrNotFound)
	}
	samples, err := s.samples.Samples()
	if err != nil {
		return 0, fmt.Errorf("list samples: %w", err)
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: sample corpus is empty", domain.ErrNotFound)
	}

	docs := make([]domain.Document, 0, len(samples))
	for _, sample := range samples {
		text, err := s.samples.Text(ctx, sample)
		if err != nil {
			logger.Warn("Skipping sample %q: %v", sample.Path, err)
			continue
		}
		docs = append(docs, domain.Document{
			SourceName: SampleSourceName(sample),
			RawText:    text,
			Category:   sample.Category,
		})
	}
	return s.ingest.IngestDocuments(ctx, docs, domain.PartitionPermanent)
}

// SampleSourceName is the source label of a seeded sample.
func SampleSourceName(sample driven.Sample) string {
	title := cases.Title(language.English).String(sample.Category)
	return fmt.Sprintf("Sample %s - %s", title, sample.Name)
}
