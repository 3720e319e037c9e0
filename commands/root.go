package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "sheets2da",
	Short: "Syncs published Google Sheets tabs to NWN 2DA files",
	Long: `sheets2da downloads configuration spreadsheets published as CSV from Google
Sheets, converts each tab to 2DA V2.0 format and writes the result into a
Neverwinter Nights server's override directory. Unchanged sheets are detected
by checksum and skipped, so it is safe to run from cron every few minutes.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sheets2da.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Displays vaguely useful internal information")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
