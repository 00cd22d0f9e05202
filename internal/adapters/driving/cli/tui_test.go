package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui"
)

func stubRunApp(t *testing.T, err error) *int {
	t.Helper()
	calls := 0
	original := runApp
	runApp = func(*tui.App) error {
		calls++
		return err
	}
	t.Cleanup(func() { runApp = original })
	return &calls
}

func TestTUICmd_Runs(t *testing.T) {
	setupTestServices(t)
	calls := stubRunApp(t, nil)

	_, err := executeCommand(t, "", "tui", "-k", "3")

	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestTUICmd_RunError(t *testing.T) {
	setupTestServices(t)
	stubRunApp(t, errors.New("no tty"))

	_, err := executeCommand(t, "", "tui")

	assert.ErrorContains(t, err, "TUI error: no tty")
}

func TestTUICmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	retrievalService = nil

	_, err := executeCommand(t, "", "tui")

	assert.EqualError(t, err, "retrieval service not configured")
}

func TestTUIPorts(t *testing.T) {
	s := setupTestServices(t)
	tuiTopK = 6
	t.Cleanup(func() { tuiTopK = 0 })

	ports := tuiPorts()

	assert.Same(t, s.retrieval, ports.Retrieval)
	assert.Same(t, s.kb, ports.KnowledgeBase)
	assert.Equal(t, 6, ports.TopK)
	assert.NoError(t, ports.Validate())
}
