package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Document is the ingestion unit: the extracted text of one file.
// It is consumed by the chunker and not retained afterwards.
type Document struct {
	// SourceName identifies where the text came from (usually a file name).
	SourceName string

	// RawText is the full extracted text.
	RawText string

	// Category is the draft type label, empty when unknown.
	Category string
}

// Chunk is a bounded word window of a Document.
// Chunks are immutable once created.
type Chunk struct {
	// ID is deterministic for a given source and position.
	ID string

	// Text is the chunk content.
	Text string

	// Source is the originating document's SourceName.
	Source string

	// Category is inherited from the document.
	Category string

	// Position is the ordinal position within the document.
	Position int
}

// ChunkID returns the store identifier for the chunk at position within source.
// The same source and position always map to the same identifier, so
// re-ingesting a document overwrites its previous entries.
func ChunkID(source string, position int) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:8]) + "#" + strconv.Itoa(position)
}

// StoreEntry is an embedded chunk persisted in a vector partition.
type StoreEntry struct {
	ID        string
	Text      string
	Source    string
	Category  string
	Embedding []float32
	CreatedAt time.Time
}

// SearchHit is a single partition search result.
type SearchHit struct {
	Text     string
	Source   string
	Category string

	// Score is the cosine similarity to the query, higher is closer.
	Score float64
}
