package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VERSION is the CLI release version.
const VERSION = "v1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Displays the current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
