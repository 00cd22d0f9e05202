package postprocessors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/postprocessors/chunker"
)

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("noop", func(map[string]any) (driven.PostProcessor, error) {
		return &mockProcessor{name: "noop"}, nil
	})

	assert.True(t, r.Has("noop"))
	assert.False(t, r.Has("missing"))

	p, err := r.Build("noop", nil)
	require.NoError(t, err)
	assert.Equal(t, "noop", p.Name())
}

func TestRegistry_Build_Unknown(t *testing.T) {
	_, err := NewRegistry().Build("stemmer", nil)
	require.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, name := range DefaultProcessors {
		assert.True(t, r.Has(name), name)
	}
}

func TestBuildChunker_Config(t *testing.T) {
	tests := []struct {
		name        string
		cfg         map[string]any
		wantSize    int
		wantOverlap int
	}{
		{"nil config uses defaults", nil, 800, 100},
		{"int values", map[string]any{"chunk_size": 200, "overlap": 20}, 200, 20},
		{"toml int64", map[string]any{"chunk_size": int64(300), "overlap": int64(0)}, 300, 0},
		{"json float64", map[string]any{"chunk_size": float64(400)}, 400, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := buildChunker(tt.cfg)
			require.NoError(t, err)
			c := p.(*chunker.Processor)
			assert.Equal(t, tt.wantSize, c.ChunkSize())
			assert.Equal(t, tt.wantOverlap, c.Overlap())
		})
	}
}

func TestBuildChunker_Invalid(t *testing.T) {
	_, err := buildChunker(map[string]any{"chunk_size": 50, "overlap": 60})
	require.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
}
