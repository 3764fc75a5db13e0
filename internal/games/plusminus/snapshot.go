package plusminus

import "github.com/vovakirdan/plusminus/internal/puzzle"

// Snapshot captures the adapter state on top of the engine snapshot, for
// tests and replay checks.
type Snapshot struct {
	GameID   string
	LevelID  string
	Level    int
	Levels   int
	Cursor   puzzle.Pos
	Best     puzzle.BestResult
	HasBest  bool
	Message  string
	TooSmall bool
	Puzzle   puzzle.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		GameID:   g.ID(),
		LevelID:  g.LevelID(),
		Level:    g.level,
		Levels:   g.cfg.Levels,
		Cursor:   g.cursor,
		Best:     g.best,
		HasBest:  g.hasBest,
		Message:  g.message,
		TooSmall: g.tooSmall,
		Puzzle:   g.snap,
	}
}
