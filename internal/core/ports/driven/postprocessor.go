package driven

import (
	"context"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// PostProcessor turns a document into chunks or refines existing chunks.
// PostProcessors are chained in a pipeline (chunking, then identity stamping).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and the chunks produced so far.
	// A chunk-creating processor (the chunker) receives nil chunks.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
