package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/plusminus/internal/config"
	"github.com/vovakirdan/plusminus/internal/leaderboard"
	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/platform/tui"
	"github.com/vovakirdan/plusminus/internal/storage"
)

var flagAPI string

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <level-id>",
	Short: "Show the remote leaderboard of a level",
	Long: `Fetch and print the remote leaderboard of a level, along with the
score a finished game needs to be posted.

Examples:
  plusminus leaderboard 6x6_nr1
  plusminus leaderboard 8x8_nr2 --api https://scores.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runLeaderboard,
}

var submitCmd = &cobra.Command{
	Use:   "submit <game-id>",
	Short: "Post a stored finished game",
	Long: `Post a finished game from the results database to the remote
leaderboard. Game identifiers are listed by 'plusminus scores --recent'.

Examples:
  plusminus leaderboard submit 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --player ann`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	leaderboardCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Leaderboard service URL (default from config)")
	leaderboardCmd.AddCommand(submitCmd)
}

// remoteClient returns a client for --api or the configured service.
func remoteClient() (*leaderboard.Client, error) {
	if flagAPI != "" {
		cfg.Leaderboard.API = flagAPI
	} else if !cfg.Leaderboard.Enabled {
		return nil, errors.New("the leaderboard is disabled; enable it in the config or pass --api")
	}
	return newLeaderboardClient(), nil
}

// checkLeaderboardGrid rejects grid sizes below leaderboard.min_grid_size.
func checkLeaderboardGrid(l config.LeaderboardConfig, size int) error {
	if size < l.MinGridSize {
		return fmt.Errorf("%dx%d grids have no leaderboard (minimum %dx%d)", size, size, l.MinGridSize, l.MinGridSize)
	}
	return nil
}

func runLeaderboard(_ *cobra.Command, args []string) error {
	levelID := args[0]
	size, _, err := levelgen.ParseLevelID(levelID)
	if err != nil {
		return err
	}
	if err := checkLeaderboardGrid(cfg.Leaderboard, size); err != nil {
		return err
	}
	client, err := remoteClient()
	if err != nil {
		return err
	}

	board := client.Board(context.Background(), levelID)
	fmt.Println(tui.RenderLeaderboard(board, 0))
	return board.Err
}

func runSubmit(_ *cobra.Command, args []string) error {
	client, err := remoteClient()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	game, err := store.GameByID(args[0])
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("no game with id %s", args[0])
	}
	if !game.Finished {
		return fmt.Errorf("game %s is not finished", game.ID)
	}
	if err := checkLeaderboardGrid(cfg.Leaderboard, game.GridSize); err != nil {
		return err
	}

	player := resolvePlayer(store)
	if player == "" {
		player = game.Player
	}
	sub, err := leaderboard.NewSubmission(game.EngineRecord(), player)
	if err != nil {
		return err
	}

	ctx := context.Background()
	board := client.Board(ctx, game.LevelID)
	if board.Err != nil {
		return board.Err
	}
	if !board.Qualifies(game.Score) {
		return fmt.Errorf("score %d does not qualify: %s", game.Score, tui.ThresholdText(board))
	}
	if err := client.Submit(ctx, sub); err != nil {
		return err
	}

	fmt.Printf("Posted %s: score %d in %d moves as %s\n", game.LevelID, game.Score, game.Moves, player)
	return nil
}
