// Package cli provides the cobra command tree for lexdraft.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft/internal/core/services"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired for the current process. Set by Wire at start-up, or
// directly by tests through SetServices.
var (
	settingsService  driving.SettingsService
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	draftService     driving.DraftService
	kbService        driving.KnowledgeBaseService
	app              *App
)

// Persistent flags.
var (
	verbose   bool
	quiet     bool
	ephemeral bool
	configDir string
)

// wiringAnnotation selects how much a command needs wired: wiringNone for
// nothing, wiringSettings for the settings service only. Commands without
// the annotation get the full application.
const (
	wiringAnnotation = "wiring"
	wiringNone       = "none"
	wiringSettings   = "settings"
)

var rootCmd = &cobra.Command{
	Use:   "lexdraft",
	Short: "Draft Indian court petitions grounded on reference samples",
	Long: `lexdraft drafts court petitions with a language model, grounding each draft
on reference samples and the annexures supplied with the case.

Reference samples live in the permanent knowledge base. Annexures uploaded
with a case go to the temporary partition. Drafts are written as .docx
documents with an INDEX and a LIST OF DATES AND EVENTS table.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug and info logs")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"keep the temporary partition in memory for this run")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default $LEXDRAFT_HOME or ~/.lexdraft)")
}

// ServiceSet groups the driving ports the commands call.
type ServiceSet struct {
	Settings      driving.SettingsService
	Ingest        driving.IngestService
	Retrieval     driving.RetrievalService
	Draft         driving.DraftService
	KnowledgeBase driving.KnowledgeBaseService
}

// SetServices installs services directly, bypassing Wire.
func SetServices(s ServiceSet) {
	settingsService = s.Settings
	ingestService = s.Ingest
	retrievalService = s.Retrieval
	draftService = s.Draft
	kbService = s.KnowledgeBase
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetQuiet(quiet)

	switch cmd.Annotations[wiringAnnotation] {
	case wiringNone:
		return nil
	case wiringSettings:
		if settingsService != nil {
			return nil
		}
		cfg, err := loadConfigStore()
		if err != nil {
			return err
		}
		settingsService = services.NewSettingsService(cfg, ai.NewConfigValidator())
		return nil
	}

	if ingestService != nil {
		return nil
	}

	a, err := Wire(Options{ConfigDir: configDir, Ephemeral: ephemeral})
	if err != nil {
		return err
	}
	app = a
	SetServices(a.Services())
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	SetServices(ServiceSet{})
	return err
}

// errNotConfigured is returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
