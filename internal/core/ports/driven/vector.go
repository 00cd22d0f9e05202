package driven

import (
	"context"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// VectorPartition is one independent, durable partition of the vector store.
//
// Implementations must allow concurrent Search calls and serialise writes.
// Entries are unique by ID; upserting an existing ID overwrites it.
type VectorPartition interface {
	// Upsert stores entries, overwriting any with the same ID.
	Upsert(ctx context.Context, entries []domain.StoreEntry) error

	// ReplaceSources upserts entries and, in the same write, removes every
	// other entry whose source appears among them. Entries of sources not
	// named by entries are untouched.
	ReplaceSources(ctx context.Context, entries []domain.StoreEntry) error

	// Search returns up to k entries nearest to query, most similar first.
	// A non-empty category restricts results to entries whose category
	// matches exactly. An empty partition yields an empty slice.
	Search(ctx context.Context, query []float32, k int, category string) ([]domain.SearchHit, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)

	// Stats summarises the partition's contents.
	Stats(ctx context.Context) (domain.PartitionStats, error)

	// Entries returns every entry, ordered by insertion. Used for export.
	Entries(ctx context.Context) ([]domain.StoreEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
