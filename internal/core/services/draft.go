package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// Ensure DraftService implements the interface.
var _ driving.DraftService = (*DraftService)(nil)

// DraftConfig tunes generation.
type DraftConfig struct {
	// Model overrides the LLM service's model when set.
	Model string

	MaxTokens   int
	Temperature float64

	// TopK is the retrieval budget.
	TopK int

	// OutputDir receives generated documents. Empty uses
	// os.TempDir()/lexdraft.
	OutputDir string
}

// DraftService turns case facts into a rendered petition.
type DraftService struct {
	ingest    driving.IngestService
	retrieval driving.RetrievalService
	assembler *PromptAssembler
	llm       driven.LLMService
	renderer  driven.DocumentRenderer
	cfg       DraftConfig
}

// NewDraftService creates a draft service. llm may be nil, in which case
// Generate fails with domain.ErrLLMUnavailable.
func NewDraftService(
	ingest driving.IngestService,
	retrieval driving.RetrievalService,
	assembler *PromptAssembler,
	llm driven.LLMService,
	renderer driven.DocumentRenderer,
	cfg DraftConfig,
) *DraftService {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = domain.DefaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = domain.DefaultTemperature
	}
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(os.TempDir(), "lexdraft")
	}
	return &DraftService{
		ingest:    ingest,
		retrieval: retrieval,
		assembler: assembler,
		llm:       llm,
		renderer:  renderer,
		cfg:       cfg,
	}
}

// OutputDir returns the directory generated documents are written to.
func (s *DraftService) OutputDir() string {
	return s.cfg.OutputDir
}

// Generate validates facts, ingests annexures into the temporary partition,
// retrieves context, prompts the model and renders the cleaned output to
// <output dir>/petition_<uuid>.docx.
func (s *DraftService) Generate(ctx context.Context, facts domain.CaseFacts, annexures []domain.UploadedFile) (*domain.Draft, error) {
	logger.Section("Generate")
	if err := facts.Validate(); err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	names := s.ingestAnnexures(ctx, annexures)

	results, err := s.retrieval.Retrieve(ctx, facts.RetrievalQuery(), s.cfg.TopK, facts.Category())
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	logger.Info("Retrieved %d context chunks", len(results))

	prompt, err := s.assembler.Assemble(ctx, facts, results, names)
	if err != nil {
		return nil, fmt.Errorf("assemble prompt: %w", err)
	}
	logger.Debug("Prompt is %d characters", len(prompt))

	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	text := CleanModelOutput(raw)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: model returned no text", domain.ErrGenerationFailed)
	}

	path := filepath.Join(s.cfg.OutputDir, "petition_"+uuid.NewString()+".docx")
	if err := s.Render(ctx, text, facts.KeyDates, path); err != nil {
		return nil, err
	}
	logger.Info("Wrote %s", path)

	return &domain.Draft{
		RenderedText: text,
		OutputPath:   path,
		Prompt:       prompt,
		Context:      results,
		Annexures:    names,
	}, nil
}

// ingestAnnexures stores the annexures in the temporary partition as one
// batch and returns the names of those that were ingested, in upload order.
func (s *DraftService) ingestAnnexures(ctx context.Context, annexures []domain.UploadedFile) []string {
	if s.ingest == nil || len(annexures) == 0 {
		return nil
	}
	names, err := s.ingest.IngestFiles(ctx, annexures, domain.PartitionTemporary)
	if err != nil {
		logger.Warn("Annexure ingestion stopped: %v", err)
	}

	stored := make(map[string]bool, len(names))
	for _, n := range names {
		stored[n] = true
	}
	for _, f := range annexures {
		if !stored[f.Name] {
			logger.Warn("Skipping annexure %q: nothing ingested", f.Name)
		}
	}
	return names
}

// Render formats text into a document and writes it to outputPath,
// creating parent directories as needed.
func (s *DraftService) Render(ctx context.Context, text string, keyDates []string, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if outputPath == "" {
		return fmt.Errorf("%w: output path is required", domain.ErrInvalidInput)
	}

	doc, err := s.renderer.Render(text, keyDates)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, doc, 0600); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

var (
	strongMarker   = regexp.MustCompile(`\*\*|__`)
	starEmphasis   = regexp.MustCompile(`\*([^*\s][^*\n]*?)\*`)
	underEmphasis  = regexp.MustCompile(`(^|[^\w])_([^_\s][^_\n]*?)_([^\w]|$)`)
	strayAsterisks = regexp.MustCompile(`(?m)^(\s*)\*\s+`)
)

// CleanModelOutput removes markdown emphasis and every backtick from model
// output. Underscores inside words are kept. Bulleted lines that start with
// "* " become "- ".
func CleanModelOutput(text string) string {
	text = strings.ReplaceAll(text, "`", "")
	text = strongMarker.ReplaceAllString(text, "")
	text = strayAsterisks.ReplaceAllString(text, "$1- ")
	text = starEmphasis.ReplaceAllString(text, "$1")
	text = underEmphasis.ReplaceAllString(text, "$1$2$3")
	return strings.TrimSpace(text)
}
