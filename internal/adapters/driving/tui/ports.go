// Package tui provides an interactive terminal browser for the lexdraft
// knowledge base. It is a driving adapter: every action goes through a
// driving port.
package tui

import (
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Retrieval answers context queries. Required.
	Retrieval driving.RetrievalService

	// KnowledgeBase reports partition statistics. The stats view is
	// hidden when nil.
	KnowledgeBase driving.KnowledgeBaseService

	// TopK bounds each query. Zero uses the service default.
	TopK int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
