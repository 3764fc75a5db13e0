// Package config provides YAML-based configuration loading for the
// plus-minus puzzle: board generation settings and the remote leaderboard.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/plusminus/internal/levelgen"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all configuration for the puzzle.
type Config struct {
	Puzzle      PuzzleConfig      `yaml:"puzzle"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// PuzzleConfig defines the level catalogue and board generation.
type PuzzleConfig struct {
	MinValue        int    `yaml:"min_value"`
	MaxValue        int    `yaml:"max_value"`
	Levels          int    `yaml:"levels"` // levels per grid size, numbered from 1
	GridSizes       []int  `yaml:"grid_sizes"`
	DefaultGridSize int    `yaml:"default_grid_size"`
	Scheme          string `yaml:"scheme"` // "stratified" or "plain"
}

// LeaderboardConfig defines the remote high score service.
type LeaderboardConfig struct {
	Enabled     bool          `yaml:"enabled"`
	API         string        `yaml:"api"`
	MinGridSize int           `yaml:"min_grid_size"` // smaller grids have no leaderboard
	MaxEntries  int           `yaml:"max_entries"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Validate reports the first problem found in cfg.
func (c Config) Validate() error {
	p := c.Puzzle
	if len(p.GridSizes) == 0 {
		return fmt.Errorf("%w: puzzle.grid_sizes is empty", ErrInvalid)
	}
	for _, size := range p.GridSizes {
		if size <= 0 {
			return fmt.Errorf("%w: grid size %d", ErrInvalid, size)
		}
	}
	if !slices.Contains(p.GridSizes, p.DefaultGridSize) {
		return fmt.Errorf("%w: default grid size %d not in %v", ErrInvalid, p.DefaultGridSize, p.GridSizes)
	}
	if p.MinValue > p.MaxValue {
		return fmt.Errorf("%w: min_value %d > max_value %d", ErrInvalid, p.MinValue, p.MaxValue)
	}
	if p.Levels < 1 {
		return fmt.Errorf("%w: levels must be at least 1, got %d", ErrInvalid, p.Levels)
	}
	if _, err := levelgen.ParseScheme(p.Scheme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	l := c.Leaderboard
	if l.Enabled && l.API == "" {
		return fmt.Errorf("%w: leaderboard.api is required when the leaderboard is enabled", ErrInvalid)
	}
	if l.MaxEntries < 1 {
		return fmt.Errorf("%w: leaderboard.max_entries must be at least 1", ErrInvalid)
	}
	if l.Timeout < 0 {
		return fmt.Errorf("%w: negative leaderboard.timeout", ErrInvalid)
	}
	return nil
}

// GenOptions returns generator options for a board of the given size.
// The config must be valid.
func (p PuzzleConfig) GenOptions(size int) levelgen.Options {
	scheme, _ := levelgen.ParseScheme(p.Scheme)
	return levelgen.Options{
		Size:     size,
		MinValue: p.MinValue,
		MaxValue: p.MaxValue,
		Scheme:   scheme,
	}
}

// LevelIDs lists every level of a grid size in play order.
func (p PuzzleConfig) LevelIDs(size int) []string {
	ids := make([]string, 0, p.Levels)
	for n := 1; n <= p.Levels; n++ {
		ids = append(ids, levelgen.LevelID(size, n))
	}
	return ids
}

// HasLeaderboard reports whether grids of size take part in the remote leaderboard.
func (l LeaderboardConfig) HasLeaderboard(size int) bool {
	return l.Enabled && size >= l.MinGridSize
}
