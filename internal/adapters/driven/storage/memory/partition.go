// Package memory provides a non-durable vector partition.
//
// It backs the temporary partition in ephemeral mode and stands in for the
// SQLite partitions in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/storage/vectorindex"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure Partition implements the interface.
var _ driven.VectorPartition = (*Partition)(nil)

// Partition is an in-memory vector partition.
type Partition struct {
	mu    sync.RWMutex
	name  domain.Partition
	index *vectorindex.Index
}

// NewPartition creates an empty in-memory partition.
func NewPartition(name domain.Partition) *Partition {
	return &Partition{name: name, index: vectorindex.New()}
}

// Upsert stores entries, overwriting existing IDs.
func (p *Partition) Upsert(_ context.Context, entries []domain.StoreEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.put(entries)
	return nil
}

// ReplaceSources upserts entries and drops older entries of their sources.
func (p *Partition) ReplaceSources(_ context.Context, entries []domain.StoreEntry) error {
	if len(entries) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index.Remove(p.index.Stale(entries)...)
	p.put(entries)
	return nil
}

func (p *Partition) put(entries []domain.StoreEntry) {
	now := time.Now().UTC()
	for _, e := range entries {
		if prev, ok := p.index.Get(e.ID); ok {
			e.CreatedAt = prev.CreatedAt
		} else if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		e.Embedding = append([]float32(nil), e.Embedding...)
		p.index.Put(e)
	}
}

// Search returns up to k entries nearest to query.
func (p *Partition) Search(ctx context.Context, query []float32, k int, category string) ([]domain.SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Search(query, k, category), nil
}

// Count returns the number of entries.
func (p *Partition) Count(context.Context) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Len(), nil
}

// Stats summarises the partition.
func (p *Partition) Stats(context.Context) (domain.PartitionStats, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Stats(p.name), nil
}

// Entries returns every entry in insertion order.
func (p *Partition) Entries(context.Context) ([]domain.StoreEntry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Entries(), nil
}

// Clear removes every entry.
func (p *Partition) Clear(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index.Reset()
	return nil
}

// Close is a no-op.
func (p *Partition) Close() error {
	return nil
}
