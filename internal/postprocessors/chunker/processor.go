// Package chunker splits document text into overlapping word windows.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of words shared by adjacent chunks.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits document text into fixed-size word windows.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker. It fails with domain.ErrInvalidChunkConfig when
// the window could not advance.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := validate(p.chunkSize, p.overlap); err != nil {
		return nil, err
	}
	return p, nil
}

func validate(size, overlap int) error {
	switch {
	case size <= 0:
		return fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidChunkConfig, size)
	case overlap < 0:
		return fmt.Errorf("%w: overlap %d must not be negative", domain.ErrInvalidChunkConfig, overlap)
	case overlap >= size:
		return fmt.Errorf("%w: overlap %d must be less than chunk size %d", domain.ErrInvalidChunkConfig, overlap, size)
	}
	return nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured window in words.
func (p *Processor) ChunkSize() int { return p.chunkSize }

// Overlap returns the configured overlap in words.
func (p *Processor) Overlap() int { return p.overlap }

// Process splits the document text into chunks.
// Input chunks are ignored; this processor creates new chunks from the text.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	windows, err := Split(doc.RawText, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(windows))
	for i, text := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunks = append(chunks, domain.Chunk{
			Text:     text,
			Source:   doc.SourceName,
			Category: doc.Category,
			Position: i,
		})
	}
	return chunks, nil
}

// Split returns successive windows of size whitespace-delimited tokens,
// advancing by size-overlap tokens. Tokens in a window are joined by a
// single space. The final window may be shorter than size.
func Split(text string, size, overlap int) ([]string, error) {
	if err := validate(size, overlap); err != nil {
		return nil, err
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	step := size - overlap
	windows := make([]string, 0, (len(tokens)+step-1)/step)
	for start := 0; start < len(tokens); start += step {
		end := min(start+size, len(tokens))
		windows = append(windows, strings.Join(tokens[start:end], " "))
	}
	return windows, nil
}
