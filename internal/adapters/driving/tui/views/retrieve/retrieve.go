// Package retrieve provides the query and results view for the TUI.
package retrieve

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
)

// ErrNoRetrievalService indicates that no retrieval service was provided.
var ErrNoRetrievalService = errors.New("retrieval service is required")

// View holds the query and category inputs, the result list and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	query     *input.Field
	category  *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	retrieval driving.RetrievalService
	topK      int
	ctx       context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // false once results are being navigated
}

// NewView creates a new retrieve view. topK of zero uses the service default.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	retrieval driving.RetrievalService,
	topK int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		query:      input.NewQueryField(s),
		category:   input.NewCategoryField(s),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		retrieval:  retrieval,
		topK:       topK,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context used for retrieval calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.query.Init()
}

// Update handles messages for the retrieve view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RetrievalCompleted:
		v.handleCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.query, cmd = v.query.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Open):
		if result := v.list.SelectedResult(); result != nil {
			selected := *result
			return v, func() tea.Msg {
				return messages.ResultSelected{Result: selected}
			}
		}
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.NewQuery):
		v.focusInput = true
		v.query.SetValue("")
		return v, v.query.Focus()
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.NextField):
		if v.query.Focused() {
			v.query.Blur()
			return v, v.category.Focus()
		}
		v.category.Blur()
		return v, v.query.Focus()

	case keymap.Matches(msg.String(), v.keymap.Retrieve):
		query := strings.TrimSpace(v.query.Value())
		if query == "" {
			return v, nil
		}
		category := strings.TrimSpace(v.category.Value())
		v.statusbar.SetState(status.StateRetrieving)
		v.statusbar.SetCategory(category)
		v.focusInput = false
		v.query.Blur()
		v.category.Blur()
		return v, v.performRetrieve(query, category)
	}

	var cmd tea.Cmd
	if v.category.Focused() {
		v.category, cmd = v.category.Update(msg)
	} else {
		v.query, cmd = v.query.Update(msg)
	}
	return v, cmd
}

// performRetrieve runs the query off the update loop.
func (v *View) performRetrieve(query, category string) tea.Cmd {
	retrieval, ctx, topK := v.retrieval, v.ctx, v.topK
	return func() tea.Msg {
		if retrieval == nil {
			return messages.ErrorOccurred{Err: ErrNoRetrievalService}
		}
		results, err := retrieval.Retrieve(ctx, query, topK, category)
		return messages.RetrievalCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleCompleted(msg messages.RetrievalCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(len(msg.Results))
	v.focusInput = false
	v.query.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the retrieve view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("Retrieve context"), "",
		v.query.View(),
		v.category.View(), "",
	)

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.query.SetWidth(width)
	v.category.SetWidth(width)
	v.list.SetDimensions(width, height-14)
	v.statusbar.SetWidth(width)
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.query.Value()
}

// SetQuery sets the query text.
func (v *View) SetQuery(query string) {
	v.query.SetValue(query)
}

// Category returns the current category filter.
func (v *View) Category() string {
	return v.category.Value()
}

// SetCategory sets the category filter.
func (v *View) SetCategory(category string) {
	v.category.SetValue(category)
}

// Results returns the current results.
func (v *View) Results() []domain.RetrievalResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused reports whether keystrokes go to the inputs.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// CategoryFocused reports whether the category input has focus.
func (v *View) CategoryFocused() bool {
	return v.category.Focused()
}

// Reset returns the view to an empty query with input focus.
// The category filter is kept.
func (v *View) Reset() {
	v.focusInput = true
	v.query.SetValue("")
	v.query.Focus()
	v.category.Blur()
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}
