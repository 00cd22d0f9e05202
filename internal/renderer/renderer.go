package renderer

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Renderer lays out model output through a document writer.
type Renderer struct {
	newWriter     driven.DocumentWriterFactory
	newClassifier func() LineClassifier
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClassifier replaces the heuristic line classifier. The factory is
// called once per render.
func WithClassifier(factory func() LineClassifier) Option {
	return func(r *Renderer) {
		r.newClassifier = factory
	}
}

// New creates a renderer that writes through writers from factory.
func New(factory driven.DocumentWriterFactory, opts ...Option) *Renderer {
	r := &Renderer{
		newWriter: factory,
		newClassifier: func() LineClassifier {
			return NewHeuristicClassifier()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render parses raw and returns the serialised document. keyDates feed the
// chronology table when the model wrote none. Any input, including the
// empty string, produces a document.
func (r *Renderer) Render(raw string, keyDates []string) ([]byte, error) {
	if r.newWriter == nil {
		return nil, errors.New("renderer: no document writer")
	}
	blocks := Parse(raw, r.newClassifier())
	return r.RenderBlocks(blocks, keyDates)
}

// RenderBlocks writes already parsed blocks.
func (r *Renderer) RenderBlocks(blocks []domain.RenderBlock, keyDates []string) ([]byte, error) {
	w := r.newWriter()
	for _, b := range blocks {
		Emit(w, b, keyDates)
	}

	out, err := w.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serialise document: %w", err)
	}
	return out, nil
}

// Emit writes one block. A table section becomes its heading, the table
// (when there is one to draw) and a spacer paragraph.
func Emit(w driven.DocumentWriter, b domain.RenderBlock, keyDates []string) {
	switch b.Kind {
	case domain.BlockTable:
		w.AddHeading(b.Heading)
		if table, ok := LayoutTable(b.Heading, b.Rows, keyDates); ok {
			w.AddTable(table)
		}
		w.AddParagraph("")
	default:
		w.AddParagraph(b.Text)
	}
}
