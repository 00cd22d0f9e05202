package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexdraft/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexdraft/internal/adapters/driven/docx"
	"github.com/custodia-labs/lexdraft/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexdraft/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/core/services"
	"github.com/custodia-labs/lexdraft/internal/logger"
	"github.com/custodia-labs/lexdraft/internal/normalisers"
	"github.com/custodia-labs/lexdraft/internal/postprocessors"
	"github.com/custodia-labs/lexdraft/internal/renderer"
)

// Options control how Wire builds the application.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Ephemeral keeps the temporary partition in memory.
	Ephemeral bool
}

// App holds every collaborator built at start-up.
type App struct {
	Config   *file.ConfigStore
	Settings *domain.AppSettings

	settings  *services.SettingsService
	store     *services.VectorStore
	ingest    *services.IngestService
	retrieval *services.RetrievalService
	draft     *services.DraftService
	kb        *services.KnowledgeBaseService
	ai        *ai.Services
}

// Wire constructs the application from configuration. Every store and
// client is built once here and shared by reference.
func Wire(opts Options) (*App, error) {
	logger.Section("Wiring")

	cfg, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settingsSvc := services.NewSettingsService(cfg, ai.NewConfigValidator())
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	logger.Debug("Config: %s", cfg.Path())

	aiSvcs, err := ai.NewServices(*settings)
	if err != nil {
		return nil, err
	}
	if aiSvcs.Embedding == nil {
		logger.Debug("Embedding provider %s not configured", settings.Embedding.Provider)
	}
	if aiSvcs.LLM == nil {
		logger.Debug("LLM provider %s not configured", settings.LLM.Provider)
	}

	perm, temp, err := openPartitions(settings.Paths.DataDir, opts.Ephemeral)
	if err != nil {
		aiSvcs.Close()
		return nil, err
	}
	store := services.NewVectorStore(aiSvcs.Embedding, perm, temp)

	pipeline, err := postprocessors.NewDefaultPipeline(settings.Drafting.ChunkSize, settings.Drafting.ChunkOverlap)
	if err != nil {
		_ = store.Close()
		aiSvcs.Close()
		return nil, err
	}
	logger.Debug("Chunking pipeline: %s", strings.Join(pipeline.Names(), " -> "))

	prompts, err := file.NewPromptStore(filepath.Join(cfg.Dir(), "prompts"))
	if err != nil {
		_ = store.Close()
		aiSvcs.Close()
		return nil, err
	}

	extractors := normalisers.NewDefaultRegistry()
	rules := file.NewRuleStore(settings.Paths.RulesDir)
	samples := file.NewSampleCorpus(settings.Paths.SamplesDir, extractors)

	ingest := services.NewIngestService(store, extractors, pipeline, settings.Drafting.IngestWorkers)
	retrieval := services.NewRetrievalService(store, settings.Drafting.TopK)
	assembler := services.NewPromptAssembler(prompts, rules, samples, settings.Drafting.StyleExcerptChars)
	draft := services.NewDraftService(ingest, retrieval, assembler, aiSvcs.LLM, renderer.New(docx.Factory),
		services.DraftConfig{
			Model:       settings.LLM.Model,
			MaxTokens:   settings.LLM.MaxTokens,
			Temperature: settings.LLM.Temperature,
			TopK:        settings.Drafting.TopK,
			OutputDir:   settings.Paths.OutputDir,
		})
	kb := services.NewKnowledgeBaseService(store, ingest, samples)

	return &App{
		Config:    cfg,
		Settings:  settings,
		settings:  settingsSvc,
		store:     store,
		ingest:    ingest,
		retrieval: retrieval,
		draft:     draft,
		kb:        kb,
		ai:        aiSvcs,
	}, nil
}

func openPartitions(dataDir string, ephemeral bool) (driven.VectorPartition, driven.VectorPartition, error) {
	perm, err := sqlite.Open(dataDir, domain.PartitionPermanent)
	if err != nil {
		return nil, nil, fmt.Errorf("open permanent partition: %w", err)
	}

	if ephemeral {
		return perm, memory.NewPartition(domain.PartitionTemporary), nil
	}

	temp, err := sqlite.Open(dataDir, domain.PartitionTemporary)
	if err != nil {
		_ = perm.Close()
		return nil, nil, fmt.Errorf("open temporary partition: %w", err)
	}
	return perm, temp, nil
}

// Services returns the driving ports for the command tree.
func (a *App) Services() ServiceSet {
	return ServiceSet{
		Settings:      a.settings,
		Ingest:        a.ingest,
		Retrieval:     a.retrieval,
		Draft:         a.draft,
		KnowledgeBase: a.kb,
	}
}

// Close releases the partitions and AI clients.
func (a *App) Close() error {
	err := a.store.Close()
	a.ai.Close()
	return err
}
