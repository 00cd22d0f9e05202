package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedRPS        = "embedding.requests_per_second"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyLLMMaxTokens    = "llm.max_tokens"
	keyLLMTemperature  = "llm.temperature"
	keyChunkSize       = "drafting.chunk_size"
	keyChunkOverlap    = "drafting.chunk_overlap"
	keyTopK            = "drafting.top_k"
	keyStyleChars      = "drafting.style_excerpt_chars"
	keyIngestWorkers   = "drafting.ingest_workers"
	keyDataDir         = "paths.data_dir"
	keyOutputDir       = "paths.output_dir"
	keySamplesDir      = "paths.samples_dir"
	keyRulesDir        = "paths.rules_dir"
	keyOpenAIAPIKey    = "openai.api_key"
	keyAnthropicAPIKey = "anthropic.api_key"
)

// defaultOllamaURL is used for Ollama when no base URL is configured.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService maps the config store onto domain settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
// aiValidator may be nil, in which case CheckProviders is a no-op.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults. Relative paths resolve against the config
// directory.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	embedProvider := s.getProvider(keyEmbedProvider, defaults.Embedding.Provider)
	llmProvider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:          embedProvider,
			Model:             s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[embedProvider]),
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL),
			APIKey:            s.apiKey(keyEmbedAPIKey, embedProvider),
			RequestsPerSecond: s.configStore.GetFloat(keyEmbedRPS),
		},
		LLM: domain.LLMSettings{
			Provider:    llmProvider,
			Model:       s.getString(keyLLMModel, domain.DefaultLLMModels()[llmProvider]),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL),
			APIKey:      s.apiKey(keyLLMAPIKey, llmProvider),
			MaxTokens:   s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
		},
		Drafting: domain.DraftingSettings{
			ChunkSize:         s.getInt(keyChunkSize, defaults.Drafting.ChunkSize),
			ChunkOverlap:      s.getInt(keyChunkOverlap, defaults.Drafting.ChunkOverlap),
			TopK:              s.getInt(keyTopK, defaults.Drafting.TopK),
			StyleExcerptChars: s.getInt(keyStyleChars, defaults.Drafting.StyleExcerptChars),
			IngestWorkers:     s.getInt(keyIngestWorkers, defaults.Drafting.IngestWorkers),
		},
		Paths: domain.PathSettings{
			DataDir:    s.getPath(keyDataDir, "data"),
			OutputDir:  s.getPath(keyOutputDir, ""),
			SamplesDir: s.getPath(keySamplesDir, "samples"),
			RulesDir:   s.getPath(keyRulesDir, "rules"),
		},
	}

	if settings.Embedding.Provider == domain.AIProviderOllama && settings.Embedding.BaseURL == "" {
		settings.Embedding.BaseURL = defaultOllamaURL
	}
	if settings.LLM.Provider == domain.AIProviderOllama && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaURL
	}
	if _, exists := s.configStore.Get(keyChunkOverlap); exists {
		settings.Drafting.ChunkOverlap = s.configStore.GetInt(keyChunkOverlap)
	}

	return settings, nil
}

// SetEmbeddingProvider configures the embedding provider. An empty model
// selects the provider default.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: embedding provider %q", domain.ErrInvalidInput, provider)
	}
	if !provider.SupportsEmbeddings() {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" && s.providerKey(provider) == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}
	return s.setAll(map[string]any{
		keyEmbedProvider: provider.String(),
		keyEmbedModel:    model,
	}, keyEmbedAPIKey, apiKey)
}

// SetLLMProvider configures the LLM provider. An empty model selects the
// provider default.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: LLM provider %q", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" && s.providerKey(provider) == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}
	return s.setAll(map[string]any{
		keyLLMProvider: provider.String(),
		keyLLMModel:    model,
	}, keyLLMAPIKey, apiKey)
}

func (s *SettingsService) setAll(values map[string]any, apiKeyKey, apiKey string) error {
	for k, v := range values {
		if err := s.configStore.Set(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	if apiKey != "" {
		if err := s.configStore.Set(apiKeyKey, apiKey); err != nil {
			return fmt.Errorf("save %s: %w", apiKeyKey, err)
		}
	}
	return nil
}

// Validate checks that settings are internally consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if !settings.Embedding.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: embedding provider %s is not configured",
			domain.ErrEmbeddingUnavailable, settings.Embedding.Provider))
	}
	if !settings.LLM.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: LLM provider %s is not configured",
			domain.ErrLLMUnavailable, settings.LLM.Provider))
	}
	d := settings.Drafting
	if d.ChunkSize <= 0 || d.ChunkOverlap < 0 || d.ChunkOverlap >= d.ChunkSize {
		errs = append(errs, fmt.Errorf("%w: size %d, overlap %d",
			domain.ErrInvalidChunkConfig, d.ChunkSize, d.ChunkOverlap))
	}
	if d.TopK <= 0 {
		errs = append(errs, fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidInput))
	}
	return errors.Join(errs...)
}

// CheckProviders pings the configured embedding and LLM providers.
func (s *SettingsService) CheckProviders(ctx context.Context) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return errors.Join(
		s.aiValidator.ValidateEmbedding(ctx, &settings.Embedding),
		s.aiValidator.ValidateLLM(ctx, &settings.LLM),
	)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

// apiKey prefers the section key and falls back to the provider's own key.
func (s *SettingsService) apiKey(key string, provider domain.AIProvider) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return s.providerKey(provider)
}

func (s *SettingsService) providerKey(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return s.configStore.GetString(keyOpenAIAPIKey)
	case domain.AIProviderAnthropic:
		return s.configStore.GetString(keyAnthropicAPIKey)
	default:
		return ""
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

// getPath resolves a configured path against the config directory. An
// unset key uses defaultRel under the config directory, or "" when
// defaultRel is empty.
func (s *SettingsService) getPath(key, defaultRel string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		if defaultRel == "" {
			return ""
		}
		val = defaultRel
	}
	if filepath.IsAbs(val) {
		return val
	}
	return filepath.Join(s.configStore.Dir(), val)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
