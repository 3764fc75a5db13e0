package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/config"
	"github.com/vovakirdan/plusminus/internal/games/plusminus"
	"github.com/vovakirdan/plusminus/internal/platform/tui"
	"github.com/vovakirdan/plusminus/internal/registry"
	"github.com/vovakirdan/plusminus/internal/storage"
)

var (
	flagLevel      int
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [size]",
	Short: "Play a level",
	Long: `Start playing a level of the given grid size.

Without a size the difficulty preset picks one (easy: smallest grid,
normal: default grid, hard: largest grid); without a preset the last
played grid is continued. Without --level the last played level of that
grid is continued.

Controls:
  Arrows/WASD/HJKL  - Move the cursor, then move the token
  Enter/Space       - Start on the cursor tile
  Mouse click       - Start on or move to a tile
  U/Backspace       - Undo
  Y/Ctrl+R          - Redo
  R                 - Restart the level
  N/] and P/[       - Next and previous level
  Tab               - Remote leaderboard (when enabled)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C/Esc      - Quit

Examples:
  plusminus play
  plusminus play 8 --level 3
  plusminus play --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level number (default: continue the last one)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) error {
	svc, closeSvc := openServices()
	defer closeSvc()

	size, level := pickLevel(svc.Store)
	if len(args) == 1 {
		n, err := parseSize(args[0])
		if err != nil {
			return err
		}
		if n != size {
			level = 1
		}
		size = n
	} else if flagDifficulty != "" {
		n := cfg.Puzzle.GridSizeForPreset(config.ParseDifficulty(flagDifficulty))
		if n != size {
			level = 1
		}
		size = n
	}
	if flagLevel > 0 {
		level = flagLevel
	}
	if level > cfg.Puzzle.Levels {
		return fmt.Errorf("level %d out of range 1..%d", level, cfg.Puzzle.Levels)
	}

	// Sizes outside the config are playable too; they just have no menu entry.
	if !slices.Contains(cfg.Puzzle.GridSizes, size) {
		registry.RegisterIfAbsent(plusminus.GameID(size), func() registry.Game { return plusminus.New(size) })
	}
	game, err := registry.Create(plusminus.GameID(size))
	if err != nil {
		return err
	}

	rc := runtimeConfig()
	rc.GridSize = size
	rc.Level = level
	logger.Debug("starting game", "game", game.ID(), "level", level)

	if err := tui.Run(game, svc, rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// pickLevel returns the last played grid size and level, or the default
// grid's first level.
func pickLevel(store *storage.Store) (size, level int) {
	size, level = cfg.Puzzle.DefaultGridSize, 1
	if store == nil {
		return size, level
	}
	s, l, ok, err := store.LastLevel()
	if err != nil {
		logger.Warn("could not read last level", "error", err)
		return size, level
	}
	if ok {
		return s, l
	}
	return size, level
}
