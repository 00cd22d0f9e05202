// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// RetrievalCompleted carries retrieval results back to the model.
type RetrievalCompleted struct {
	Query   string
	Results []domain.RetrievalResult
	Err     error
}

// ResultSelected is sent when a retrieved passage is opened.
type ResultSelected struct {
	Result domain.RetrievalResult
}

// StatsLoaded carries knowledge base statistics.
type StatsLoaded struct {
	Stats *domain.KnowledgeBaseStats
	Err   error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewRetrieve is the query input and results view.
	ViewRetrieve
	// ViewPassage shows the full text of one retrieved passage.
	ViewPassage
	// ViewStats summarises both partitions.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewRetrieve:
		return "retrieve"
	case ViewPassage:
		return "passage"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
