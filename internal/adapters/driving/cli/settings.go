package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage application settings",
	Long:        `View and configure AI providers, drafting parameters and storage paths.`,
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	RunE:        runConfigShow,
}

var configEmbeddingCmd = &cobra.Command{
	Use:         "embedding",
	Short:       "Configure embedding provider",
	Long:        `Configure the embedding provider used to index and search the knowledge base.`,
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	RunE:        runConfigEmbedding,
}

var configLLMCmd = &cobra.Command{
	Use:         "llm",
	Short:       "Configure LLM provider",
	Long:        `Configure the language model that drafts petitions.`,
	Annotations: map[string]string{wiringAnnotation: wiringSettings},
	RunE:        runConfigLLM,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single configuration key",
	Long: `Sets a dotted configuration key, for example:

  lexdraft config set drafting.top_k 8
  lexdraft config set drive.folder_id 1AbC...
  lexdraft config set paths.output_dir ~/petitions

Numbers and true/false are stored typed; everything else as a string.`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{wiringAnnotation: wiringNone},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd, configEmbeddingCmd, configLLMCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	printProviderAccess(cmd, settings.Embedding.Provider, settings.Embedding.BaseURL, settings.Embedding.APIKey)
	if settings.Embedding.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %.1f req/s\n", settings.Embedding.RequestsPerSecond)
	}
	cmd.Printf("  Status: %s\n", configuredLabel(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	printProviderAccess(cmd, settings.LLM.Provider, settings.LLM.BaseURL, settings.LLM.APIKey)
	cmd.Printf("  Max tokens: %d\n", settings.LLM.MaxTokens)
	cmd.Printf("  Temperature: %.2f\n", settings.LLM.Temperature)
	cmd.Printf("  Status: %s\n", configuredLabel(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Drafting]")
	cmd.Printf("  Chunk size: %d words\n", settings.Drafting.ChunkSize)
	cmd.Printf("  Chunk overlap: %d words\n", settings.Drafting.ChunkOverlap)
	cmd.Printf("  Top K: %d\n", settings.Drafting.TopK)
	cmd.Printf("  Style excerpt: %d chars\n", settings.Drafting.StyleExcerptChars)
	cmd.Printf("  Ingest workers: %d\n", settings.Drafting.IngestWorkers)
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Data: %s\n", settings.Paths.DataDir)
	cmd.Printf("  Samples: %s\n", settings.Paths.SamplesDir)
	cmd.Printf("  Rules: %s\n", settings.Paths.RulesDir)
	output := settings.Paths.OutputDir
	if output == "" {
		output = "(system temp directory)"
	}
	cmd.Printf("  Output: %s\n", output)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'lexdraft config embedding' or 'lexdraft config llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printProviderAccess(cmd *cobra.Command, provider domain.AIProvider, baseURL, apiKey string) {
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if !provider.RequiresAPIKey() {
		return
	}
	if apiKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func runConfigEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	return configureProvider(cmd, bufio.NewReader(cmd.InOrStdin()), "embedding",
		domain.AllEmbeddingProviders(), domain.DefaultEmbeddingModels(), settingsService.SetEmbeddingProvider)
}

func runConfigLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	return configureProvider(cmd, bufio.NewReader(cmd.InOrStdin()), "LLM",
		domain.AllLLMProviders(), domain.DefaultLLMModels(), settingsService.SetLLMProvider)
}

func configureProvider(
	cmd *cobra.Command,
	reader *bufio.Reader,
	label string,
	providers []domain.AIProvider,
	defaults map[domain.AIProvider]string,
	set func(domain.AIProvider, string, string) error,
) error {
	cmd.Printf("Select %s Provider\n", label)
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	defaultModel := defaults[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selected.RequiresAPIKey() {
		cmd.Print("Enter API key (blank to keep the stored key): ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := set(selected, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure %s provider: %w", label, err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.CheckProviders(cmd.Context()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("%s configuration validation failed: %w", label, err)
	}
	cmd.Println("OK")

	cmd.Printf("%s provider configured: %s (%s)\n", label, selected.Description(), model)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigStore()
	if err != nil {
		return err
	}

	key := strings.TrimSpace(args[0])
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return fmt.Errorf("%w: invalid key %q", domain.ErrInvalidInput, args[0])
	}

	if err := cfg.Set(key, parseValue(args[1])); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// parseValue stores integers, floats and booleans typed.
func parseValue(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// Helper functions.

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo from a terminal, otherwise a plain line.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}
