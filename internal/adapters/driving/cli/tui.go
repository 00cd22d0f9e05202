package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/tui"
)

var tuiTopK int

// runApp starts the program. Tests replace it to avoid taking the terminal.
var runApp = func(app *tui.App) error { return app.Run() }

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the knowledge base interactively",
	Long: `Launch an interactive terminal browser for the knowledge base.

Type a query to see the passages a draft would be grounded on, optionally
restricted to one petition category, and open any passage to read it in
full. The knowledge base screen shows entry counts for both partitions.

Controls:
  ↑/k, ↓/j - Navigate passages
  Tab      - Switch between query and category
  Enter    - Retrieve / Open
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVarP(&tuiTopK, "top-k", "k", 0, "passages per query (0 = configured default)")
	rootCmd.AddCommand(tuiCmd)
}

func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Retrieval:     retrievalService,
		KnowledgeBase: kbService,
		TopK:          tuiTopK,
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	if retrievalService == nil {
		return errNotConfigured("retrieval")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
