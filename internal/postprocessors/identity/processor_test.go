package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "identity", New().Name())
}

func TestProcessor_Process(t *testing.T) {
	doc := &domain.Document{SourceName: "order.pdf", Category: "writ petition"}
	in := []domain.Chunk{
		{Text: "first", Position: 0},
		{Text: "  ", Position: 1},
		{Text: "second", Position: 2},
	}

	out, err := New().Process(context.Background(), doc, in)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Text)
	assert.Equal(t, "second", out[1].Text)
	assert.Equal(t, 1, out[1].Position)
	assert.Equal(t, domain.ChunkID("order.pdf", 0), out[0].ID)
	assert.Equal(t, domain.ChunkID("order.pdf", 1), out[1].ID)
	for _, c := range out {
		assert.Equal(t, "order.pdf", c.Source)
		assert.Equal(t, "writ petition", c.Category)
	}
}

func TestProcessor_Process_StableIDs(t *testing.T) {
	doc := &domain.Document{SourceName: "same.txt"}
	chunks := []domain.Chunk{{Text: "x"}}

	a, err := New().Process(context.Background(), doc, append([]domain.Chunk(nil), chunks...))
	require.NoError(t, err)
	b, err := New().Process(context.Background(), doc, append([]domain.Chunk(nil), chunks...))
	require.NoError(t, err)

	assert.Equal(t, a[0].ID, b[0].ID)
}
