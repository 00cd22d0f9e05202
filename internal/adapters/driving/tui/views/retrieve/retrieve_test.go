package retrieve

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

type mockRetrieval struct {
	results  []domain.RetrievalResult
	err      error
	query    string
	topK     int
	category string
}

func (m *mockRetrieval) Retrieve(_ context.Context, query string, topK int, category string) ([]domain.RetrievalResult, error) {
	m.query, m.topK, m.category = query, topK, category
	return m.results, m.err
}

func testResults() []domain.RetrievalResult {
	return []domain.RetrievalResult{
		{Source: "Sample Writ Petition - w1.pdf", Text: "habeas corpus", Partition: domain.PartitionPermanent, Score: 0.9},
		{Source: "order.pdf", Text: "detention order", Partition: domain.PartitionTemporary, Score: 0.4},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newReadyView(svc *mockRetrieval) *View {
	v := NewView(nil, nil, svc, 3)
	v.SetDimensions(100, 40)
	return v
}

func TestView_SubmitRunsRetrieval(t *testing.T) {
	svc := &mockRetrieval{results: testResults()}
	v := newReadyView(svc)

	v.Update(key("detention"))
	v.Update(key("tab"))
	assert.True(t, v.CategoryFocused())
	v.Update(key("writ petition"))

	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.False(t, v.InputFocused())

	msg := cmd()
	assert.Equal(t, "detention", svc.query)
	assert.Equal(t, "writ petition", svc.category)
	assert.Equal(t, 3, svc.topK)

	v.Update(msg)
	assert.Len(t, v.Results(), 2)
	assert.NoError(t, v.Err())
	assert.Equal(t, status.StateResults, v.statusbar.State())
	assert.Contains(t, v.View(), "Sample Writ Petition - w1.pdf")
}

func TestView_TabCyclesFocus(t *testing.T) {
	v := newReadyView(&mockRetrieval{})

	v.Update(key("tab"))
	assert.True(t, v.CategoryFocused())
	v.Update(key("tab"))
	assert.False(t, v.CategoryFocused())
	assert.True(t, v.query.Focused())
}

func TestView_EmptyQueryIgnored(t *testing.T) {
	v := newReadyView(&mockRetrieval{})
	v.SetQuery("   ")

	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_RetrievalError(t *testing.T) {
	svc := &mockRetrieval{err: errors.New("embedding unavailable")}
	v := newReadyView(svc)
	v.SetQuery("bail")

	_, cmd := v.Update(key("enter"))
	v.Update(cmd())

	require.Error(t, v.Err())
	assert.Equal(t, status.StateError, v.statusbar.State())
	assert.Contains(t, v.View(), "embedding unavailable")
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	v.SetDimensions(80, 24)
	v.SetQuery("bail")

	_, cmd := v.Update(key("enter"))
	msg := cmd()

	assert.Equal(t, messages.ErrorOccurred{Err: ErrNoRetrievalService}, msg)
	v.Update(msg)
	assert.ErrorIs(t, v.Err(), ErrNoRetrievalService)
}

func TestView_ResultsNavigationAndOpen(t *testing.T) {
	v := newReadyView(&mockRetrieval{})
	v.Update(messages.RetrievalCompleted{Query: "q", Results: testResults()})

	v.Update(key("j"))
	assert.Equal(t, 1, v.SelectedIndex())
	v.Update(key("k"))
	v.Update(key("down"))
	assert.Equal(t, 1, v.SelectedIndex())

	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ResultSelected{Result: testResults()[1]}, cmd())
}

func TestView_NewQuery(t *testing.T) {
	v := newReadyView(&mockRetrieval{})
	v.SetQuery("old")
	v.Update(messages.RetrievalCompleted{Results: testResults()})

	v.Update(key("n"))

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := newReadyView(&mockRetrieval{})

	_, cmd := v.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_ResetKeepsCategory(t *testing.T) {
	v := newReadyView(&mockRetrieval{})
	v.SetCategory("civil suit")
	v.Update(messages.RetrievalCompleted{Results: testResults()})
	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	v.Reset()

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Results())
	assert.NoError(t, v.Err())
	assert.Equal(t, "civil suit", v.Category())
}

func TestView_NotReady(t *testing.T) {
	v := NewView(nil, nil, &mockRetrieval{}, 0)

	assert.Equal(t, "Initialising...", v.View())
	assert.NotNil(t, v.Init())

	v.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	assert.Contains(t, v.View(), "Retrieve context")
}
