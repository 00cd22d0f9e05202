// Package identity stamps store identifiers and provenance onto chunks.
package identity

import (
	"context"
	"strings"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// Processor assigns deterministic IDs, copies the document's source and
// category onto each chunk and drops blank chunks.
type Processor struct{}

// New creates an identity processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "identity"
}

// Process returns the stamped chunks. Positions are renumbered after blank
// chunks are dropped so IDs stay dense.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	out := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		c.Position = len(out)
		c.Source = doc.SourceName
		c.Category = doc.Category
		c.ID = domain.ChunkID(doc.SourceName, c.Position)
		out = append(out, c)
	}
	return out, nil
}
