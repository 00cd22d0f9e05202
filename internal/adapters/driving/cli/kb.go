package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexdraft/internal/connectors/filesystem"
	"github.com/custodia-labs/lexdraft/internal/connectors/google"
	"github.com/custodia-labs/lexdraft/internal/connectors/google/drive"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

var (
	kbClearYes     bool
	kbWatchTemp    bool
	kbWatchCat     string
	kbWatchDelay   time.Duration
	kbPullFolder   string
	kbPullSeed     bool
	kbPullDir      string
	kbExportOutput string
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the knowledge base",
	Long: `Commands for inspecting and maintaining the two vector partitions.

The permanent partition holds reference samples and survives between cases.
The temporary partition holds annexures for the case at hand.`,
}

var kbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show partition statistics",
	Args:  cobra.NoArgs,
	RunE:  runKBStats,
}

var kbClearCmd = &cobra.Command{
	Use:   "clear <partition>",
	Short: "Remove every entry from a partition",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBClear,
}

var kbExportCmd = &cobra.Command{
	Use:   "export <partition>",
	Short: "Write a compressed snapshot of a partition",
	Long: `Writes every entry of a partition, embeddings included, as zstd-compressed
JSON lines. The snapshot can be loaded with 'lexdraft kb import'.`,
	Args: cobra.ExactArgs(1),
	RunE: runKBExport,
}

var kbImportCmd = &cobra.Command{
	Use:   "import <partition> <snapshot>",
	Short: "Load a snapshot into a partition",
	Long: `Loads a snapshot written by 'lexdraft kb export'. Entries with the same
identifier are overwritten. Embeddings are taken from the snapshot, so the
configured embedding model must match the one that produced it.`,
	Args: cobra.ExactArgs(2),
	RunE: runKBImport,
}

var kbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Ingest the reference sample corpus into the permanent partition",
	Long: `Ingests every sample under the samples directory. Each subfolder is one
category: "writ_petition/" becomes "writ petition".`,
	Args: cobra.NoArgs,
	RunE: runKBSeed,
}

var kbWatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Ingest files as they change",
	Long: `Watches a directory tree and ingests created or modified files once
changes settle. Deleted files are ignored. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runKBWatch,
}

var kbPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download reference samples from Google Drive",
	Long: `Downloads samples from a shared Google Drive folder into the samples
directory. Each subfolder of the Drive folder is one category. Google Docs
are exported as plain text.

Credentials are read from drive.api_key or drive.access_token in the config
file, or from GOOGLE_API_KEY or GOOGLE_ACCESS_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: runKBPull,
}

func init() {
	kbClearCmd.Flags().BoolVarP(&kbClearYes, "yes", "y", false, "do not ask for confirmation")
	kbExportCmd.Flags().StringVarP(&kbExportOutput, "out", "o", "", "snapshot path (default <partition>.jsonl.zst)")
	kbWatchCmd.Flags().BoolVarP(&kbWatchTemp, "temporary", "t", false, "ingest into the temporary partition")
	kbWatchCmd.Flags().StringVarP(&kbWatchCat, "category", "c", "", "category tag for every chunk")
	kbWatchCmd.Flags().DurationVar(&kbWatchDelay, "debounce", filesystem.DefaultDebounce,
		"quiet period before a batch is ingested")
	kbPullCmd.Flags().StringVar(&kbPullFolder, "folder", "", "Drive folder ID (default drive.folder_id)")
	kbPullCmd.Flags().StringVar(&kbPullDir, "dir", "", "target directory (default the samples directory)")
	kbPullCmd.Flags().BoolVar(&kbPullSeed, "seed", false, "seed the permanent partition after pulling")

	kbCmd.AddCommand(kbStatsCmd, kbClearCmd, kbExportCmd, kbImportCmd, kbSeedCmd, kbWatchCmd, kbPullCmd)
	rootCmd.AddCommand(kbCmd)
}

func runKBStats(cmd *cobra.Command, _ []string) error {
	if kbService == nil {
		return errNotConfigured("knowledge base")
	}

	stats, err := kbService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	for _, ps := range []domain.PartitionStats{stats.Permanent, stats.Temporary} {
		cmd.Printf("[%s]\n", ps.Partition)
		cmd.Printf("  Entries: %d\n", ps.Entries)
		cmd.Printf("  Sources: %d\n", ps.Sources)
		if len(ps.Categories) > 0 {
			cats := make([]string, 0, len(ps.Categories))
			for c := range ps.Categories {
				cats = append(cats, c)
			}
			sort.Strings(cats)
			cmd.Println("  Categories:")
			for _, c := range cats {
				label := c
				if label == "" {
					label = "(none)"
				}
				cmd.Printf("    %s: %d\n", label, ps.Categories[c])
			}
		}
		cmd.Println()
	}
	return nil
}

func runKBClear(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errNotConfigured("knowledge base")
	}

	partition, err := domain.ParsePartition(args[0])
	if err != nil {
		return err
	}

	if !kbClearYes {
		cmd.Printf("Remove every entry from the %s partition? [y/N]: ", partition)
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := kbService.Clear(cmd.Context(), partition); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Printf("Cleared the %s partition.\n", partition)
	return nil
}

func runKBExport(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errNotConfigured("knowledge base")
	}

	partition, err := domain.ParsePartition(args[0])
	if err != nil {
		return err
	}

	path := kbExportOutput
	if path == "" {
		path = partition.String() + ".jsonl.zst"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	n, err := kbService.Export(cmd.Context(), partition, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Exported %d entries to %s\n", n, path)
	return nil
}

func runKBImport(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errNotConfigured("knowledge base")
	}

	partition, err := domain.ParsePartition(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	n, err := kbService.Import(cmd.Context(), partition, f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d entries into the %s partition.\n", n, partition)
	return nil
}

func runKBSeed(cmd *cobra.Command, _ []string) error {
	if kbService == nil {
		return errNotConfigured("knowledge base")
	}

	n, err := kbService.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	cmd.Printf("Seeded %d sample(s) into the permanent partition.\n", n)
	return nil
}

func runKBWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	partition := domain.PartitionFor(!kbWatchTemp)
	w := filesystem.New(args[0], kbWatchDelay)
	defer w.Close()

	cmd.Printf("Watching %s (into the %s partition). Press Ctrl+C to stop.\n", args[0], partition)
	return w.Run(cmd.Context(), func(ctx context.Context, paths []string) error {
		n, err := ingestService.IngestPaths(ctx, paths, partition, kbWatchCat)
		if err != nil {
			return err
		}
		logger.Info("Watch batch: %d of %d file(s) ingested", n, len(paths))
		cmd.Printf("Ingested %d document(s)\n", n)
		return nil
	})
}

func runKBPull(cmd *cobra.Command, _ []string) error {
	dir := kbPullDir
	if dir == "" {
		if settingsService == nil {
			return errNotConfigured("settings")
		}
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		dir = settings.Paths.SamplesDir
	}

	src, err := newSampleSource(cmd.Context(), kbPullFolder)
	if err != nil {
		return err
	}

	n, err := src.Pull(cmd.Context(), dir)
	if err != nil {
		if drive.IsAuthError(err) {
			return fmt.Errorf("pull failed: %w (check drive credentials and folder sharing)", err)
		}
		return fmt.Errorf("pull failed: %w", err)
	}
	cmd.Printf("Pulled %d sample(s) into %s\n", n, dir)

	if kbPullSeed {
		return runKBSeed(cmd, nil)
	}
	return nil
}

// newSampleSource builds the Drive sample source from configuration.
var newSampleSource = func(ctx context.Context, folderID string) (driven.SampleSource, error) {
	cfg, err := loadConfigStore()
	if err != nil {
		return nil, err
	}

	if folderID == "" {
		folderID = cfg.GetString("drive.folder_id")
	}
	values := map[string]string{
		"folder_id":  folderID,
		"extensions": cfg.GetString("drive.extensions"),
	}
	if rps := cfg.GetFloat("drive.requests_per_second"); rps > 0 {
		values["requests_per_second"] = strconv.FormatFloat(rps, 'f', -1, 64)
	}
	dcfg, err := drive.ParseConfig(values)
	if err != nil {
		return nil, fmt.Errorf("%w: set drive.folder_id or pass --folder", err)
	}

	svc, err := google.NewDriveService(ctx, google.Credentials{
		APIKey:      firstNonEmpty(cfg.GetString("drive.api_key"), os.Getenv("GOOGLE_API_KEY")),
		AccessToken: firstNonEmpty(cfg.GetString("drive.access_token"), os.Getenv("GOOGLE_ACCESS_TOKEN")),
	})
	if err != nil {
		return nil, err
	}
	return drive.NewSampleSource(svc, dcfg), nil
}

// loadConfigStore returns the wired config store, or opens one when the
// command runs without wiring.
func loadConfigStore() (driven.ConfigStore, error) {
	if app != nil {
		return app.Config, nil
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return store, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
