package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dowe-nwn/sheets2da/config"
	"github.com/dowe-nwn/sheets2da/logger"
	"github.com/dowe-nwn/sheets2da/syncer"
)

var (
	dryRun   bool
	force    bool
	watch    bool
	interval time.Duration
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Downloads all configured sheets and rewrites the changed 2DA files",
	Long: `Runs a full sync pass over every sheet in the configuration: download the
published CSV, compare its checksum against the last synced content and, for
changed sheets, convert to 2DA and write to the output directory. With
--watch the pass repeats at the poll interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		log := logger.New(cfg.LogFile, debug)
		defer func() { _ = log.Sync() }()

		store, err := syncer.NewFileStore(cfg.StateFile)
		if err != nil {
			return err
		}

		sources := make([]syncer.Source, len(cfg.Sources))
		for i, source := range cfg.Sources {
			sources[i] = syncer.Source{Name: source.Name, URL: source.URL}
		}

		s := syncer.New(
			syncer.NewHTTPFetcher(cfg.FetchTimeout()),
			store,
			log,
			syncer.Options{
				OutputDir:    cfg.OutputDir,
				Sources:      sources,
				ForcedWidths: cfg.ForcedWidths,
			})

		run := syncer.RunOptions{DryRun: dryRun, Force: force}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if watch {
			every := cfg.PollInterval()
			if interval > 0 {
				every = interval
			}

			s.Watch(ctx, every, run)

			return nil
		}

		s.Run(ctx, run)

		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Previews changes without writing any files")
	syncCmd.Flags().BoolVar(&force, "force", false, "Ignores change detection and re-syncs every sheet")
	syncCmd.Flags().BoolVar(&watch, "watch", false, "Keeps running, re-syncing at the poll interval")
	syncCmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval for --watch (overrides the configured value)")

	rootCmd.AddCommand(syncCmd)
}
