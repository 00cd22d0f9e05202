package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

func newTestConfig(t *testing.T) *file.ConfigStore {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("LEXDRAFT_LLM_MODEL", "")
	t.Setenv("LEXDRAFT_OUTPUT_DIR", "")
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

type stubValidator struct {
	embedErr, llmErr error
}

func (v stubValidator) ValidateEmbedding(context.Context, *domain.EmbeddingSettings) error {
	return v.embedErr
}

func (v stubValidator) ValidateLLM(context.Context, *domain.LLMSettings) error {
	return v.llmErr
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := newTestConfig(t)
	service := NewSettingsService(store, nil)

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Embedding.Model, settings.Embedding.Model)
	assert.Equal(t, defaults.LLM.Model, settings.LLM.Model)
	assert.Equal(t, domain.DefaultMaxTokens, settings.LLM.MaxTokens)
	assert.InDelta(t, domain.DefaultTemperature, settings.LLM.Temperature, 1e-9)
	assert.Equal(t, defaults.Drafting, settings.Drafting)

	assert.Equal(t, filepath.Join(store.Dir(), "data"), settings.Paths.DataDir)
	assert.Equal(t, filepath.Join(store.Dir(), "samples"), settings.Paths.SamplesDir)
	assert.Equal(t, filepath.Join(store.Dir(), "rules"), settings.Paths.RulesDir)
	assert.Empty(t, settings.Paths.OutputDir)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := newTestConfig(t)
	require.NoError(t, store.Set("embedding.provider", "ollama"))
	require.NoError(t, store.Set("embedding.requests_per_second", 2.5))
	require.NoError(t, store.Set("llm.provider", "anthropic"))
	require.NoError(t, store.Set("llm.temperature", 0.0))
	require.NoError(t, store.Set("drafting.chunk_size", 400))
	require.NoError(t, store.Set("drafting.chunk_overlap", 0))
	require.NoError(t, store.Set("paths.output_dir", "/srv/drafts"))
	require.NoError(t, store.Set("paths.samples_dir", "corpus"))

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
	assert.InDelta(t, 2.5, settings.Embedding.RequestsPerSecond, 1e-9)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, domain.DefaultLLMModels()[domain.AIProviderAnthropic], settings.LLM.Model)
	assert.Zero(t, settings.LLM.Temperature)
	assert.Equal(t, 400, settings.Drafting.ChunkSize)
	assert.Zero(t, settings.Drafting.ChunkOverlap)
	assert.Equal(t, "/srv/drafts", settings.Paths.OutputDir)
	assert.Equal(t, filepath.Join(store.Dir(), "corpus"), settings.Paths.SamplesDir)
}

func TestSettingsService_Get_InvalidProviderReturnsDefault(t *testing.T) {
	store := newTestConfig(t)
	require.NoError(t, store.Set("llm.provider", "invalid_provider"))

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().LLM.Provider, settings.LLM.Provider)
}

func TestSettingsService_Get_ProviderKeyFallback(t *testing.T) {
	store := newTestConfig(t)
	require.NoError(t, store.Set("openai.api_key", "sk-shared"))
	require.NoError(t, store.Set("llm.provider", "anthropic"))

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-shared", settings.Embedding.APIKey)
	assert.Empty(t, settings.LLM.APIKey)

	t.Setenv("ANTHROPIC_API_KEY", "ak-env")
	settings, err = NewSettingsService(store, nil).Get()
	require.NoError(t, err)
	assert.Equal(t, "ak-env", settings.LLM.APIKey)
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	store := newTestConfig(t)
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "sk-test"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
}

func TestSettingsService_SetEmbeddingProvider_Errors(t *testing.T) {
	service := NewSettingsService(newTestConfig(t), nil)

	assert.ErrorIs(t, service.SetEmbeddingProvider("bogus", "", ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetEmbeddingProvider(domain.AIProviderAnthropic, "", "key"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", ""), domain.ErrInvalidInput)
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	store := newTestConfig(t)
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "mistral", ""))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "mistral", settings.LLM.Model)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)
}

func TestSettingsService_SetLLMProvider_UsesSharedKey(t *testing.T) {
	store := newTestConfig(t)
	require.NoError(t, store.Set("anthropic.api_key", "ak-file"))
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderAnthropic, "", ""))
	assert.ErrorIs(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", ""), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	store := newTestConfig(t)
	service := NewSettingsService(store, nil)

	err := service.Validate()
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	require.NoError(t, store.Set("openai.api_key", "sk-test"))
	assert.NoError(t, service.Validate())

	require.NoError(t, store.Set("drafting.chunk_overlap", 900))
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidChunkConfig)
}

func TestSettingsService_CheckProviders(t *testing.T) {
	store := newTestConfig(t)

	assert.NoError(t, NewSettingsService(store, nil).CheckProviders(context.Background()))
	assert.NoError(t, NewSettingsService(store, stubValidator{}).CheckProviders(context.Background()))

	llmErr := errors.New("unreachable")
	err := NewSettingsService(store, stubValidator{llmErr: llmErr}).CheckProviders(context.Background())
	assert.ErrorIs(t, err, llmErr)
}
