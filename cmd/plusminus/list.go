package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List grid sizes and levels",
	Long:  `Shows every registered grid size with its level identifiers.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available grids:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Levels")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "------")

	for _, g := range games {
		size, err := parseSize(g.ID)
		if err != nil {
			continue
		}
		ids := cfg.Puzzle.LevelIDs(size)
		levels := "-"
		if len(ids) > 0 {
			levels = fmt.Sprintf("%s .. %s", ids[0], ids[len(ids)-1])
		}
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, g.ID, g.Title, levels)
	}

	fmt.Println()
	fmt.Println("Run 'plusminus play <size>' to play a grid.")
}
