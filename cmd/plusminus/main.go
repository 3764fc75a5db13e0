// plusminus is a terminal grid puzzle: walk a token across numbered tiles,
// alternately adding and subtracting their values.
//
// Usage:
//
//	plusminus list                 - List grid sizes and levels
//	plusminus play [size]          - Play a level
//	plusminus menu                 - Pick grid size and level interactively
//	plusminus board <level-id>     - Print the tiles of a level
//	plusminus scores [size]        - Show best results
//	plusminus leaderboard <level>  - Show or post to the remote leaderboard
//	plusminus export <file>        - Export finished games to Parquet
//	plusminus serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - UI tick rate (default: 30)
//	--db <path>         - Database path (default: ~/.plusminus/plusminus.db)
//	--config <path>     - Config file (default search: ~/.plusminus/config.yaml, ./configs/plusminus.yaml)
//	--player <name>     - Name posted to the leaderboard
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/config"
	"github.com/vovakirdan/plusminus/internal/games/plusminus"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagPlayer   string
	flagLogLevel string

	logger *log.Logger
	cfg    config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "plusminus",
	Short: "Plus Minus - a grid puzzle in your terminal",
	Long: `Plus Minus is a single-player grid puzzle. Walk a token across a grid
of numbered tiles: each newly visited tile's value is alternately added to
and subtracted from your score. Moves go to orthogonally adjacent tiles you
have not visited yet, and the game ends when no such tile remains.

Every level is generated from its name, so "6x6_nr3" is the same board for
everyone.

Available commands:
  list         - Show grid sizes and levels
  play         - Play a level directly
  menu         - Interactive grid and level picker
  board        - Print the tiles of a level
  scores       - View best results
  leaderboard  - View or post to the remote leaderboard
  export       - Export finished games to Parquet
  serve        - Start SSH server for remote play

Examples:
  plusminus menu
  plusminus play 8 --level 3
  plusminus board 6x6_nr1
  plusminus serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "UI tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.plusminus/plusminus.db", "Path to the results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for the leaderboard (3-16 of a-z A-Z 0-9 _ -)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup creates the logger, loads the config and hands the puzzle
// settings to the game registry.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "plusminus",
		Level:           level,
	})
	log.SetDefault(logger)

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	plusminus.Configure(plusminus.Settings{Puzzle: cfg.Puzzle})
	return nil
}
