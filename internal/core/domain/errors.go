package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown processor or provider type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Pipeline Errors.

	// ErrExtractionFailed indicates every extraction strategy failed for a file.
	// Batch ingestion skips the file and continues.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrInvalidChunkConfig indicates a chunk size/overlap combination that
	// cannot make progress. This is a configuration error and is fatal.
	ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

	// ErrEmbeddingFailed indicates the embedding provider returned an error.
	// Ingestion skips the chunk; a query cannot proceed without it.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrStoreUnavailable indicates a vector partition is not initialised
	// or its storage cannot be reached.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrInvalidPartition indicates an unknown partition name.
	ErrInvalidPartition = errors.New("invalid partition")

	// ErrGenerationFailed indicates the language model call failed or
	// returned nothing usable.
	ErrGenerationFailed = errors.New("generation failed")

	// Provider Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Drafting is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Ingestion and retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
