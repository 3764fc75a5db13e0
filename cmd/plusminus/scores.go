package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/platform/tui"
	"github.com/vovakirdan/plusminus/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores [size]",
	Short: "Show best results",
	Long: `Display the best result and play statistics of every level.
Without a size every configured grid is shown.

Examples:
  plusminus scores
  plusminus scores 6x6
  plusminus scores --recent 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "List the N most recent games instead")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagRecent > 0 {
		return printRecent(store, flagRecent)
	}

	sizes := cfg.Puzzle.GridSizes
	if len(args) == 1 {
		size, err := parseSize(args[0])
		if err != nil {
			return err
		}
		sizes = []int{size}
	}

	for i, size := range sizes {
		if i > 0 {
			fmt.Println()
		}
		if err := printGridScores(store, size); err != nil {
			return err
		}
	}
	return nil
}

func printGridScores(store *storage.Store, size int) error {
	rows, err := tui.ScoreboardRows(store, size, cfg.Puzzle.Levels)
	if err != nil {
		return err
	}

	fmt.Printf("Best Results - %dx%d\n", size, size)
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-6s  %-6s  %-6s  %s\n", "Level", "Best", "Moves", "Plays", "Solved", "Last played")
	fmt.Printf("  %-10s  %-6s  %-6s  %-6s  %-6s  %s\n", "-----", "----", "-----", "-----", "------", "-----------")

	for _, r := range rows {
		best, moves := "-", "-"
		if r.Best != nil {
			best = fmt.Sprint(r.Best.Score)
			moves = fmt.Sprint(r.Best.Moves)
		}
		plays, solved, last := "0", "0", "never"
		if r.Stats != nil {
			plays = fmt.Sprint(r.Stats.GamesCount)
			solved = fmt.Sprint(r.Stats.Finished)
			last = r.Stats.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-10s  %-6s  %-6s  %-6s  %-6s  %s\n", r.LevelID, best, moves, plays, solved, last)
	}
	return nil
}

func printRecent(store *storage.Store, limit int) error {
	games, err := store.RecentGames(limit)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'plusminus play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-36s  %-10s  %-6s  %-6s  %-8s  %s\n", "Game", "Level", "Score", "Moves", "Finished", "Date")
	fmt.Printf("  %-36s  %-10s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "-----", "-----", "--------", "----")
	for _, g := range games {
		finished := "no"
		if g.Finished {
			finished = "yes"
		}
		fmt.Printf("  %-36s  %-10s  %-6d  %-6d  %-8s  %s\n",
			g.ID, g.LevelID, g.Score, g.Moves, finished, g.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
