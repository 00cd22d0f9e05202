package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

var (
	ingestTemporary bool
	ingestCategory  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [paths...]",
	Short: "Add documents to the knowledge base",
	Long: `Extracts, chunks and embeds files into a vector partition.

Directories are walked recursively; hidden files are skipped. Supported
formats are PDF, DOCX and plain text. Re-ingesting a file overwrites its
previous chunks.

By default documents go to the permanent partition, which holds reference
material. Use --temporary for case material that should not outlive the case.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestTemporary, "temporary", "t", false, "ingest into the temporary partition")
	ingestCmd.Flags().StringVarP(&ingestCategory, "category", "c", "",
		"category tag for every chunk, e.g. writ_petition")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	partition := domain.PartitionFor(!ingestTemporary)
	n, err := ingestService.IngestPaths(cmd.Context(), args, partition, ingestCategory)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d document(s) into the %s partition.\n", n, partition)
	return nil
}
