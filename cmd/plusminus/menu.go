package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a grid size and level interactively",
	Long: `Start in interactive menu mode.

Pick a grid size, then a level. Going back from a game returns to the
menu. Tab opens the best results of every level.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Esc/B        - Back
  Tab          - Best results
  Q            - Quit

Examples:
  plusminus menu
  plusminus menu --db ./plusminus.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	svc, closeSvc := openServices()
	defer closeSvc()

	if err := tui.RunSession(svc, runtimeConfig()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
