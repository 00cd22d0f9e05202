package mcp

import (
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval backs the retrieve_context tool.
	Retrieval driving.RetrievalService

	// Draft backs generate_draft. Optional.
	Draft driving.DraftService

	// Ingest backs ingest_files. Optional.
	Ingest driving.IngestService

	// KnowledgeBase backs the stats resources. Optional.
	KnowledgeBase driving.KnowledgeBaseService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
