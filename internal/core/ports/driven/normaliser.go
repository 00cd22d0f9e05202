package driven

import "context"

// Extractor converts uploaded bytes into plain text.
// Each extractor handles a fixed set of file extensions.
type Extractor interface {
	// Extensions returns the lowercased extensions handled, including the dot.
	Extensions() []string

	// Extract returns the plain text of content.
	Extract(ctx context.Context, content []byte) (string, error)
}

// ExtractorRegistry dispatches extraction by declared extension.
type ExtractorRegistry interface {
	// Extract converts content using the extractor registered for ext.
	// Unknown extensions fall back to UTF-8 decoding with replacement.
	Extract(ctx context.Context, content []byte, ext string) (string, error)
}

// CommandRunner runs an external program and returns its stdout.
// Extractors that shell out (pdftotext) depend on this for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
