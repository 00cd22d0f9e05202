package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/views/passage"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/views/retrieve"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/views/stats"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView     *menu.View
	retrieveView *retrieve.View
	passageView  *passage.View
	statsView    *stats.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s, menu.DefaultItems(ports.KnowledgeBase != nil)),
		retrieveView: retrieve.NewView(s, nil, ports.Retrieval, ports.TopK),
		passageView:  passage.NewView(s),
		statsView:    stats.NewView(s, ports.KnowledgeBase),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context passed to service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.retrieveView.WithContext(ctx)
	a.statsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("lexdraft"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		previous := a.currentView
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewRetrieve:
			// Returning from a passage keeps the results.
			if previous == messages.ViewPassage {
				return a, nil
			}
			a.retrieveView.Reset()
			return a, a.retrieveView.Init()
		case messages.ViewStats:
			return a, a.statsView.Init()
		case messages.ViewMenu, messages.ViewPassage, messages.ViewHelp:
		}
		return a, nil

	case messages.ResultSelected:
		a.passageView.SetResult(msg.Result)
		a.currentView = messages.ViewPassage
		return a, nil

	case messages.RetrievalCompleted:
		a.err = msg.Err
		a.retrieveView, cmd = a.retrieveView.Update(msg)
		return a, cmd

	case messages.StatsLoaded:
		a.err = msg.Err
		a.statsView, cmd = a.statsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewRetrieve:
		a.retrieveView, cmd = a.retrieveView.Update(msg)
	case messages.ViewPassage:
		a.passageView, cmd = a.passageView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewRetrieve:
		return a.retrieveView.View()
	case messages.ViewPassage:
		return a.passageView.View()
	case messages.ViewStats:
		return a.statsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Retrieve:
  (type)      Enter the query
  tab         Switch to the category filter
  enter       Retrieve passages

Results:
  j/k, ↑/↓    Navigate passages
  enter       Open the full passage
  n           New query

Knowledge base:
  r           Refresh counts

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error reported by a service call.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.retrieveView.SetDimensions(width, height)
	a.passageView.SetDimensions(width, height)
	a.statsView.SetDimensions(width, height)
}
