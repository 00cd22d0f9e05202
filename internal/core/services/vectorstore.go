package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// VectorStore is the dual vector store. It owns the permanent and temporary
// partitions and the embedding service shared by ingestion and queries.
type VectorStore struct {
	partitions map[domain.Partition]driven.VectorPartition
	embedder   driven.EmbeddingService
}

// NewVectorStore creates a dual store. A nil partition stays unavailable
// and every operation on it returns domain.ErrStoreUnavailable.
func NewVectorStore(embedder driven.EmbeddingService, permanent, temporary driven.VectorPartition) *VectorStore {
	s := &VectorStore{
		partitions: make(map[domain.Partition]driven.VectorPartition, 2),
		embedder:   embedder,
	}
	if permanent != nil {
		s.partitions[domain.PartitionPermanent] = permanent
	}
	if temporary != nil {
		s.partitions[domain.PartitionTemporary] = temporary
	}
	return s
}

// Partition returns the backing partition.
func (s *VectorStore) Partition(p domain.Partition) (driven.VectorPartition, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPartition, p)
	}
	part, ok := s.partitions[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s partition not initialised", domain.ErrStoreUnavailable, p)
	}
	return part, nil
}

// Ingest embeds chunks and stores them in partition, replacing whatever the
// partition held for their sources. A chunk whose embedding fails is logged
// and skipped. It returns the number of entries written.
func (s *VectorStore) Ingest(ctx context.Context, p domain.Partition, chunks []domain.Chunk) (int, error) {
	part, err := s.Partition(p)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}

	vectors := s.embedChunks(ctx, chunks)
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	entries := make([]domain.StoreEntry, 0, len(chunks))
	for i, c := range chunks {
		if vectors[i] == nil {
			continue
		}
		entries = append(entries, domain.StoreEntry{
			ID:        c.ID,
			Text:      c.Text,
			Source:    c.Source,
			Category:  c.Category,
			Embedding: vectors[i],
		})
	}
	if len(entries) == 0 {
		return 0, nil
	}

	if err := part.ReplaceSources(ctx, entries); err != nil {
		return 0, fmt.Errorf("%w: write to %s: %v", domain.ErrStoreUnavailable, p, err)
	}
	logger.Debug("Stored %d/%d chunks in %s partition", len(entries), len(chunks), p)
	return len(entries), nil
}

// embedChunks embeds all chunks in one batch. When the batch fails each
// chunk is retried alone; a nil vector marks a skipped chunk.
func (s *VectorStore) embedChunks(ctx context.Context, chunks []domain.Chunk) [][]float32 {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err == nil && len(vectors) == len(chunks) {
		return vectors
	}
	if err != nil {
		logger.Debug("Batch embedding failed, retrying per chunk: %v", err)
	}

	vectors = make([][]float32, len(chunks))
	for i, c := range chunks {
		if ctx.Err() != nil {
			break
		}
		v, err := s.embedder.Embed(ctx, c.Text)
		if err != nil {
			logger.Warn("Skipping chunk %s of %q: %v: %v", c.ID, c.Source, domain.ErrEmbeddingFailed, err)
			continue
		}
		vectors[i] = v
	}
	return vectors
}

// EmbedQuery embeds a search query. Failures wrap domain.ErrEmbeddingFailed.
func (s *VectorStore) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailed, err)
	}
	return vec, nil
}

// SimilaritySearch embeds query and returns up to k hits from partition.
// A non-empty category filters by exact match.
func (s *VectorStore) SimilaritySearch(
	ctx context.Context, p domain.Partition, query string, k int, category string,
) ([]domain.SearchHit, error) {
	if _, err := s.Partition(p); err != nil {
		return nil, err
	}
	vec, err := s.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.SearchVector(ctx, p, vec, k, category)
}

// SearchVector returns up to k hits nearest to an embedded query.
func (s *VectorStore) SearchVector(
	ctx context.Context, p domain.Partition, vec []float32, k int, category string,
) ([]domain.SearchHit, error) {
	part, err := s.Partition(p)
	if err != nil {
		return nil, err
	}
	hits, err := part.Search(ctx, vec, k, category)
	if err != nil {
		return nil, fmt.Errorf("search %s partition: %w", p, err)
	}
	if hits == nil {
		hits = []domain.SearchHit{}
	}
	return hits, nil
}

// Close closes both partitions.
func (s *VectorStore) Close() error {
	var errs []error
	for _, p := range domain.Partitions() {
		if part, ok := s.partitions[p]; ok {
			if err := part.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s partition: %w", p, err))
			}
		}
	}
	return errors.Join(errs...)
}
