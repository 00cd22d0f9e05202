package driven

import (
	"context"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// AIConfigValidator verifies provider settings by testing connectivity.
type AIConfigValidator interface {
	// ValidateEmbedding returns nil if the provider answers a ping.
	ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error

	// ValidateLLM returns nil if the provider answers a ping.
	ValidateLLM(ctx context.Context, config *domain.LLMSettings) error
}
