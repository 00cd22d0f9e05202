package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

func TestPartition_UpsertSearchClear(t *testing.T) {
	ctx := context.Background()
	p := NewPartition(domain.PartitionTemporary)

	hits, err := p.Search(ctx, []float32{1, 0}, 3, "")
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, p.Upsert(ctx, []domain.StoreEntry{
		{ID: "1", Text: "notice", Source: "annexure-1.pdf", Embedding: []float32{1, 0}},
		{ID: "2", Text: "order", Source: "annexure-2.pdf", Embedding: []float32{0, 1}},
	}))

	hits, err = p.Search(ctx, []float32{0, 1}, 1, "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "order", hits[0].Text)

	require.NoError(t, p.Clear(ctx))
	n, err := p.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPartition_UpsertOverwritesAndKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	p := NewPartition(domain.PartitionPermanent)

	require.NoError(t, p.Upsert(ctx, []domain.StoreEntry{{ID: "x", Text: "v1", Embedding: []float32{1}}}))
	first, err := p.Entries(ctx)
	require.NoError(t, err)

	require.NoError(t, p.Upsert(ctx, []domain.StoreEntry{{ID: "x", Text: "v2", Embedding: []float32{1}}}))
	second, err := p.Entries(ctx)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, "v2", second[0].Text)
	assert.Equal(t, first[0].CreatedAt, second[0].CreatedAt)
}

func TestPartition_ReplaceSources(t *testing.T) {
	ctx := context.Background()
	p := NewPartition(domain.PartitionTemporary)

	require.NoError(t, p.Upsert(ctx, []domain.StoreEntry{
		{ID: "a#0", Text: "old 0", Source: "a.txt", Embedding: []float32{1}},
		{ID: "a#1", Text: "old 1", Source: "a.txt", Embedding: []float32{1}},
		{ID: "b#0", Text: "keep", Source: "b.txt", Embedding: []float32{1}},
	}))

	require.NoError(t, p.ReplaceSources(ctx, []domain.StoreEntry{
		{ID: "a#0", Text: "new 0", Source: "a.txt", Embedding: []float32{1}},
	}))
	require.NoError(t, p.ReplaceSources(ctx, nil))

	entries, err := p.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new 0", entries[0].Text)
	assert.Equal(t, "keep", entries[1].Text)
}

func TestPartition_CopiesEmbedding(t *testing.T) {
	ctx := context.Background()
	p := NewPartition(domain.PartitionTemporary)
	vec := []float32{1, 2}

	require.NoError(t, p.Upsert(ctx, []domain.StoreEntry{{ID: "x", Embedding: vec}}))
	vec[0] = 99

	entries, err := p.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, entries[0].Embedding)
}

func TestPartition_CancelledSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPartition(domain.PartitionTemporary).Search(ctx, []float32{1}, 1, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestPartition_Stats(t *testing.T) {
	ctx := context.Background()
	p := NewPartition(domain.PartitionTemporary)
	require.NoError(t, p.Upsert(ctx, []domain.StoreEntry{{ID: "x", Source: "a", Embedding: []float32{1}}}))

	stats, err := p.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PartitionTemporary, stats.Partition)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, map[string]int{"": 1}, stats.Categories)
}
