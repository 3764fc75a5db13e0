package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to pick the level to load.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // UI ticks per second (default 30)
	GridSize int // Board dimension (4, 6 or 8)
	Level    int // Level number within the grid size, 1-indexed
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		GridSize: 6,
		Level:    1,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Moves    int  // Applied moves up to the history cursor
	GameOver bool // No legal destination remains
	Paused   bool // Window too small or an overlay is open
}

// StepResult is returned by Game.Step() after each tick.
// Events carries anything that happened during the tick and should be
// handled by the platform (e.g. a new best result to persist).
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind identifies a platform-visible game event.
type EventKind int

const (
	EventNone EventKind = iota
	EventFinished
	EventNewBest
	EventIllegalMove
	EventLevelLoaded
)

// Event is emitted by a game during Step.
type Event struct {
	Kind    EventKind
	LevelID string
	Score   int
	Moves   int
	Err     error
}
