// Package stats shows entry counts for both knowledge base partitions.
package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
)

// ErrNoKnowledgeBase indicates that no knowledge base service was provided.
var ErrNoKnowledgeBase = errors.New("knowledge base service is required")

// View renders knowledge base statistics.
type View struct {
	styles *styles.Styles
	kb     driving.KnowledgeBaseService
	ctx    context.Context

	stats   *domain.KnowledgeBaseStats
	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new stats view.
func NewView(s *styles.Styles, kb driving.KnowledgeBaseService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, kb: kb, ctx: context.Background(), width: 80, height: 24}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts loading the statistics.
func (v *View) Init() tea.Cmd {
	v.loading = true
	kb, ctx := v.kb, v.ctx
	return func() tea.Msg {
		if kb == nil {
			return messages.StatsLoaded{Err: ErrNoKnowledgeBase}
		}
		stats, err := kb.Stats(ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case messages.StatsLoaded:
		v.loading = false
		v.stats, v.err = msg.Stats, msg.Err
	case messages.ErrorOccurred:
		v.err = msg.Err
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return v, v.Init()
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the statistics.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Knowledge base"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 0), 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.stats == nil:
		b.WriteString(v.styles.Muted.Render("No statistics loaded"))
	default:
		v.writePartition(&b, v.stats.Permanent)
		b.WriteString("\n")
		v.writePartition(&b, v.stats.Temporary)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] refresh  [esc] back"))
	return b.String()
}

func (v *View) writePartition(b *strings.Builder, p domain.PartitionStats) {
	b.WriteString(v.styles.Partition(string(p.Partition)))
	b.WriteString("\n")
	fmt.Fprintf(b, "  %-12s %d\n", "Entries:", p.Entries)
	fmt.Fprintf(b, "  %-12s %d\n", "Sources:", p.Sources)

	if len(p.Categories) == 0 {
		return
	}
	names := make([]string, 0, len(p.Categories))
	for name := range p.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString(v.styles.Subtitle.Render("  Categories:"))
	b.WriteString("\n")
	for _, name := range names {
		label := name
		if label == "" {
			label = "(none)"
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("    %-28s %d", label, p.Categories[name])))
		b.WriteString("\n")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Stats returns the last loaded statistics.
func (v *View) Stats() *domain.KnowledgeBaseStats {
	return v.stats
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
