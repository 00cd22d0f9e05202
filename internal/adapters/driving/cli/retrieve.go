package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

var (
	retrieveTopK     int
	retrieveCategory string
	retrieveJSON     bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Show the context a draft would be grounded on",
	Long: `Searches the permanent partition (filtered by category) and then the
temporary partition, and prints the merged results in the order the prompt
would receive them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 0, "maximum number of results (0 = configured default)")
	retrieveCmd.Flags().StringVarP(&retrieveCategory, "category", "c", "", "restrict permanent results to a category")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errNotConfigured("retrieval")
	}

	query := strings.Join(args, " ")
	results, err := retrievalService.Retrieve(cmd.Context(), query, retrieveTopK, retrieveCategory)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if retrieveJSON {
		return outputRetrieveJSON(cmd, results)
	}
	return outputRetrieveTable(cmd, results)
}

type retrievalJSON struct {
	Source    string  `json:"source"`
	Partition string  `json:"partition"`
	Score     float64 `json:"score"`
	Text      string  `json:"text"`
}

func outputRetrieveJSON(cmd *cobra.Command, results []domain.RetrievalResult) error {
	out := make([]retrievalJSON, len(results))
	for i, r := range results {
		out[i] = retrievalJSON{Source: r.Source, Partition: r.Partition.String(), Score: r.Score, Text: r.Text}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRetrieveTable(cmd *cobra.Command, results []domain.RetrievalResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%s, %.2f)\n", i+1, r.Source, r.Partition, r.Score)
		cmd.Printf("      %s\n", snippet(r.Text, 160))
		cmd.Println()
	}
	return nil
}

// snippet collapses whitespace and truncates to limit runes.
func snippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
