// Package embedding holds decorators shared by the embedding adapters.
package embedding

import (
	"context"
	"math"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// RateLimited throttles calls to an embedding provider with a token bucket.
// Each Embed or EmbedBatch call consumes one token.
type RateLimited struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// NewRateLimited wraps inner. A non-positive rps returns inner unchanged.
func NewRateLimited(inner driven.EmbeddingService, rps float64) driven.EmbeddingService {
	if inner == nil || rps <= 0 {
		return inner
	}
	burst := max(1, int(math.Ceil(rps)))
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Embed waits for a token and delegates.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Embed(ctx, text)
}

// EmbedBatch waits for a token and delegates.
func (r *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.EmbedBatch(ctx, texts)
}

// Dimensions delegates.
func (r *RateLimited) Dimensions() int { return r.inner.Dimensions() }

// ModelName delegates.
func (r *RateLimited) ModelName() string { return r.inner.ModelName() }

// Ping delegates without consuming a token.
func (r *RateLimited) Ping(ctx context.Context) error { return r.inner.Ping(ctx) }

// Close delegates.
func (r *RateLimited) Close() error { return r.inner.Close() }
