package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/games/plusminus"
	"github.com/vovakirdan/plusminus/internal/leaderboard"
	"github.com/vovakirdan/plusminus/internal/platform/tui"
	"github.com/vovakirdan/plusminus/internal/storage"
)

// openServices opens the store and the leaderboard client used by the
// interactive commands. A database that cannot be opened is logged and
// skipped: the game still works without it.
func openServices() (tui.Services, func()) {
	svc := tui.Services{Config: cfg, Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
	} else {
		svc.Store = store
		plusminus.Configure(plusminus.Settings{Puzzle: cfg.Puzzle, Store: store})
	}

	svc.Player = resolvePlayer(svc.Store)
	if cfg.Leaderboard.Enabled {
		svc.Leaderboard = newLeaderboardClient()
	}

	return svc, func() {
		if store != nil {
			store.Close()
		}
	}
}

func newLeaderboardClient() *leaderboard.Client {
	return leaderboard.NewClient(cfg.Leaderboard.API,
		leaderboard.WithTimeout(cfg.Leaderboard.Timeout),
		leaderboard.WithMaxEntries(cfg.Leaderboard.MaxEntries),
	)
}

// resolvePlayer returns the --player name, remembering a valid one, or
// the name remembered last time.
func resolvePlayer(store *storage.Store) string {
	if flagPlayer != "" {
		if !leaderboard.ValidUsername(flagPlayer) {
			logger.Warn("player name will not be posted", "player", flagPlayer, "error", leaderboard.ErrInvalidUsername)
			return flagPlayer
		}
		if store != nil {
			if err := store.SetSetting(storage.SettingPlayer, flagPlayer); err != nil {
				logger.Warn("could not remember player name", "error", err)
			}
		}
		return flagPlayer
	}
	if store == nil {
		return ""
	}
	name, _, err := store.Setting(storage.SettingPlayer)
	if err != nil {
		logger.Warn("could not read player name", "error", err)
	}
	return name
}

// runtimeConfig sizes the runtime config to the terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = flagFPS
	rc.GridSize = cfg.Puzzle.DefaultGridSize
	return rc
}

// parseSize accepts "6" or "6x6".
func parseSize(s string) (int, error) {
	if strings.Contains(s, "x") {
		return plusminus.SizeFromID(s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad grid size %q", s)
	}
	return n, nil
}
