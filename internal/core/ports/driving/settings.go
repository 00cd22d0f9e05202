package driving

import (
	"context"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that settings are internally consistent.
	Validate() error

	// CheckProviders pings the configured providers.
	CheckProviders(ctx context.Context) error
}
