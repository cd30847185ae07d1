// Package cli defines the foodtrackd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "foodtrackd",
	Short: "foodtrackd runs the local nutrition-tracking core",
	Long: "foodtrackd hosts the client-resident nutrition core: the SQLite " +
		"store, the analysis history and goal repositories, and the local " +
		"JSON facade the UI talks to.",
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "foodtrackd %s (built %s)\n", Version, BuildTime)
	},
}
