package config

import "slices"

// DifficultyPreset represents a named difficulty level. Larger grids are
// harder: longer walks leave more room for a bad sign parity.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// GridSizeForPreset picks a grid size for a preset: the smallest configured
// size for easy, the largest for hard, and the default size otherwise.
func (p PuzzleConfig) GridSizeForPreset(preset DifficultyPreset) int {
	if len(p.GridSizes) == 0 {
		return p.DefaultGridSize
	}
	switch preset {
	case DifficultyEasy:
		return slices.Min(p.GridSizes)
	case DifficultyHard:
		return slices.Max(p.GridSizes)
	default:
		return p.DefaultGridSize
	}
}

// ParseDifficulty maps a flag value to a preset. Unknown values map to normal.
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}
