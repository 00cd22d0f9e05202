package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

var (
	renderOut      string
	renderKeyDates []string
)

var renderCmd = &cobra.Command{
	Use:   "render [text-file]",
	Short: "Format drafted text as a .docx document",
	Long: `Renders already drafted text (from a file, or stdin when the argument is
"-" or omitted) into a .docx document. The INDEX and LIST OF DATES AND EVENTS
tables are synthesised when the text does not contain them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "petition.docx", "output document path")
	renderCmd.Flags().StringArrayVar(&renderKeyDates, "key-date", nil,
		`key date as "DATE - EVENT" for the chronology (repeatable)`)
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errNotConfigured("draft")
	}

	var (
		text []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		text, err = io.ReadAll(cmd.InOrStdin())
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("%w: read text: %v", domain.ErrInvalidInput, err)
	}

	if err := draftService.Render(cmd.Context(), string(text), renderKeyDates, renderOut); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	cmd.Printf("Document written to %s\n", renderOut)
	return nil
}
