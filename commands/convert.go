package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dowe-nwn/sheets2da/config"
	"github.com/dowe-nwn/sheets2da/tda"
)

var outFile string

var convertCmd = &cobra.Command{
	Use:   "convert <file.csv>",
	Short: "Converts a local CSV file to 2DA format",
	Long: `Converts a CSV file on disk to 2DA V2.0 and prints it to stdout (or writes
it with --out). Useful for checking a sheet's layout offline before
publishing it. Forced column widths are applied when the configuration file
is present; the sheet name is taken from the file name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

		widths := map[string]int{}
		if cfg, err := config.Load(configPath); err == nil {
			widths = cfg.ForcedWidths[name]
		}

		bytes, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		table, err := tda.Convert(string(bytes), name, tda.Options{ForcedWidths: widths})
		if err != nil {
			return fmt.Errorf("unable to convert %s (%v)", file, err)
		}

		if outFile == "" {
			fmt.Print(table)
			return nil
		}

		return os.WriteFile(outFile, []byte(table), 0644)
	},
}

func init() {
	convertCmd.Flags().StringVar(&outFile, "out", "", "Writes the 2DA to a file instead of stdout")

	rootCmd.AddCommand(convertCmd)
}
