package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "sleuth",
	Short: "Sleuth - content-type detection from magic bytes",
	Long: `Sleuth identifies file content types by inspecting leading bytes against
a table of byte signatures. The bytes win over the file name: a PNG renamed
to .jpg is still reported as image/png.

When no signature matches, sleuth falls back to a type derived from the
file extension, so every file gets an answer.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
