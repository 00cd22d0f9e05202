// Package passage shows the full text of one retrieved passage.
package passage

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// View is a scrollable passage viewer.
type View struct {
	styles *styles.Styles

	result       *domain.RetrievalResult
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new passage view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, width: 80, height: 24}
}

// SetResult shows result from the top.
func (v *View) SetResult(result domain.RetrievalResult) {
	v.result = &result
	v.scrollOffset = 0
	v.wrap()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the passage view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.scrollTo(v.scrollOffset - 1)
	case "down", "j":
		v.scrollTo(v.scrollOffset + 1)
	case "pgup", "ctrl+u":
		v.scrollTo(v.scrollOffset - v.visibleLines())
	case "pgdown", "ctrl+d":
		v.scrollTo(v.scrollOffset + v.visibleLines())
	case "home", "g":
		v.scrollTo(0)
	case "end", "G":
		v.scrollTo(v.maxScrollOffset())
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRetrieve}
		}
	}
	return v, nil
}

func (v *View) scrollTo(offset int) {
	v.scrollOffset = min(max(offset, 0), v.maxScrollOffset())
}

// wrap splits the passage into display lines on word boundaries.
func (v *View) wrap() {
	v.lines = nil
	if v.result == nil || strings.TrimSpace(v.result.Text) == "" {
		return
	}
	width := max(v.width-4, 20)
	for _, para := range strings.Split(v.result.Text, "\n") {
		wrapped := lipgloss.NewStyle().Width(width).Render(strings.TrimRight(para, " \t"))
		v.lines = append(v.lines, strings.Split(wrapped, "\n")...)
	}
}

func (v *View) visibleLines() int {
	return max(v.height-8, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the passage.
func (v *View) View() string {
	var b strings.Builder

	title := "Passage"
	if v.result != nil && v.result.Source != "" {
		title = v.result.Source
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.result != nil {
		b.WriteString(v.styles.Partition(string(v.result.Partition)))
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  score %.3f", v.result.Score)))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 0), 60)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No text)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(v.lines))
	for _, line := range v.lines[v.scrollOffset:end] {
		b.WriteString(v.styles.Normal.Render(line))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d",
			v.scrollOffset+1, end, len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions and rewraps the text.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrap()
	v.scrollTo(v.scrollOffset)
}

// Result returns the passage being shown.
func (v *View) Result() *domain.RetrievalResult {
	return v.result
}

// ScrollOffset returns the index of the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
