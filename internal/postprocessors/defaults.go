package postprocessors

import (
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/postprocessors/chunker"
	"github.com/custodia-labs/lexdraft/internal/postprocessors/identity"
)

// DefaultProcessors is the ingestion pipeline order.
var DefaultProcessors = []string{"chunker", "identity"}

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("identity", func(map[string]any) (driven.PostProcessor, error) {
		return identity.New(), nil
	})
}

// NewDefaultPipeline builds the chunker and identity pipeline for the given
// window. It fails with domain.ErrInvalidChunkConfig on a bad window.
func NewDefaultPipeline(chunkSize, overlap int) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildPipeline(DefaultProcessors, map[string]map[string]any{
		"chunker": {"chunk_size": chunkSize, "overlap": overlap},
	})
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Words per chunk (default: 800)
//   - overlap (int): Overlapping words between chunks (default: 100)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option
	if size, ok := intFromConfig(cfg, "chunk_size"); ok {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := intFromConfig(cfg, "overlap"); ok {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	return chunker.New(opts...)
}

// intFromConfig extracts an int, accepting the numeric types TOML and JSON
// decoding produce.
func intFromConfig(cfg map[string]any, key string) (int, bool) {
	switch v := cfg[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
