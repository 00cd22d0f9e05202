package normalisers

import (
	"context"
	"strings"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/normalisers/docx"
	"github.com/custodia-labs/lexdraft/internal/normalisers/html"
	"github.com/custodia-labs/lexdraft/internal/normalisers/markdown"
	"github.com/custodia-labs/lexdraft/internal/normalisers/pdf"
	"github.com/custodia-labs/lexdraft/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors.
type Registry struct {
	byExt    map[string]driven.Extractor
	fallback driven.Extractor
}

// NewRegistry creates a registry with the given extractors. Later
// extractors replace earlier ones for a shared extension.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		byExt:    make(map[string]driven.Extractor),
		fallback: plaintext.New(),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// NewDefaultRegistry registers the PDF, DOCX, Markdown, HTML and plain
// text extractors.
func NewDefaultRegistry() *Registry {
	return NewRegistry(plaintext.New(), markdown.New(), html.New(), docx.New(), pdf.New())
}

// Register adds an extractor for each of its extensions.
func (r *Registry) Register(e driven.Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[normaliseExt(ext)] = e
	}
}

// Supports reports whether ext has a dedicated extractor.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.byExt[normaliseExt(ext)]
	return ok
}

// Extract converts content using the extractor registered for ext.
func (r *Registry) Extract(ctx context.Context, content []byte, ext string) (string, error) {
	if e, ok := r.byExt[normaliseExt(ext)]; ok {
		return e.Extract(ctx, content)
	}
	return r.fallback.Extract(ctx, content)
}

func normaliseExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
