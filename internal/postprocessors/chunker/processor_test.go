package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p, err := New()
		require.NoError(t, err)
		assert.Equal(t, 800, p.ChunkSize())
		assert.Equal(t, 100, p.Overlap())
	})

	t.Run("custom window", func(t *testing.T) {
		p, err := New(WithChunkSize(50), WithOverlap(0))
		require.NoError(t, err)
		assert.Equal(t, 50, p.ChunkSize())
		assert.Equal(t, 0, p.Overlap())
	})

	invalid := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
		{"zero size", 0, 0},
		{"negative overlap", 10, -1},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithChunkSize(tt.size), WithOverlap(tt.overlap))
			require.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
		})
	}
}

func TestProcessor_Name(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	assert.Equal(t, "chunker", p.Name())
}

func TestSplit_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		chunks, err := Split(text, 800, 100)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestSplit_ShortText(t *testing.T) {
	chunks, err := Split("one  two\nthree", 800, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"one two three"}, chunks)
}

func TestSplit_Windows(t *testing.T) {
	chunks, err := Split(words(10), 4, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"w0 w1 w2 w3",
		"w3 w4 w5 w6",
		"w6 w7 w8 w9",
		"w9",
	}, chunks)
}

func TestSplit_CountMatchesStep(t *testing.T) {
	tests := []struct {
		tokens, size, overlap int
	}{
		{1000, 800, 100},
		{1400, 800, 100},
		{801, 800, 100},
		{7, 3, 0},
		{25, 5, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d/%d", tt.tokens, tt.size, tt.overlap), func(t *testing.T) {
			chunks, err := Split(words(tt.tokens), tt.size, tt.overlap)
			require.NoError(t, err)

			step := tt.size - tt.overlap
			assert.Len(t, chunks, (tt.tokens+step-1)/step)
			for _, c := range chunks {
				assert.LessOrEqual(t, len(strings.Fields(c)), tt.size)
			}
		})
	}
}

func TestSplit_RecoversTokens(t *testing.T) {
	text := words(2000)
	size, overlap := 800, 100

	chunks, err := Split(text, size, overlap)
	require.NoError(t, err)

	var recovered []string
	for i, c := range chunks {
		toks := strings.Fields(c)
		if i > 0 {
			toks = toks[min(overlap, len(toks)):]
		}
		recovered = append(recovered, toks...)
	}
	assert.Equal(t, strings.Fields(text), recovered)
}

func TestSplit_Deterministic(t *testing.T) {
	a, err := Split(words(3000), 800, 100)
	require.NoError(t, err)
	b, err := Split(words(3000), 800, 100)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSplit_InvalidConfig(t *testing.T) {
	_, err := Split("a b c", 100, 100)
	require.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
}

func TestProcessor_Process(t *testing.T) {
	p, err := New(WithChunkSize(3), WithOverlap(1))
	require.NoError(t, err)

	doc := &domain.Document{SourceName: "brief.txt", RawText: "a b c d e", Category: "civil suit"}
	chunks, err := p.Process(context.Background(), doc, nil)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, "a b c", chunks[0].Text)
	assert.Equal(t, "c d e", chunks[1].Text)
	assert.Equal(t, "e", chunks[2].Text)
	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.Equal(t, "brief.txt", c.Source)
		assert.Equal(t, "civil suit", c.Category)
	}
}

func TestProcessor_Process_Cancelled(t *testing.T) {
	p, err := New(WithChunkSize(2), WithOverlap(0))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Process(ctx, &domain.Document{RawText: "a b c"}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
