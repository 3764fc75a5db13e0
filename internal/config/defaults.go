package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/plusminus.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when no YAML source
// can be read.
func Default() Config {
	return Config{
		Puzzle: PuzzleConfig{
			MinValue:        1,
			MaxValue:        7,
			Levels:          10,
			GridSizes:       []int{4, 6, 8},
			DefaultGridSize: 6,
			Scheme:          "stratified",
		},
		Leaderboard: LeaderboardConfig{
			Enabled:     false,
			MinGridSize: 8,
			MaxEntries:  10,
			Timeout:     5 * time.Second,
		},
	}
}
