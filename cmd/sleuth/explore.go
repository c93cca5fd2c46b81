package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bytesleuth/sleuth/pkg/explore"
)

var exploreDatabase string

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively explore scan results",
	Long: `Launch an interactive TUI to browse detections from a scan database.

Features:
  - Faceted filtering by detected type, plus a fallback-only bucket
  - Detections table with per-file detail line
  - Vi-style navigation (jk, Ctrl-f/b, g/G)`,
	RunE: runExplore,
}

func init() {
	exploreCmd.Flags().StringVar(&exploreDatabase, "database", "sleuth.db", "Path to scan database file")
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	model, err := explore.New(exploreDatabase)
	if err != nil {
		return fmt.Errorf("loading database: %w", err)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explore TUI: %w", err)
	}

	return nil
}
