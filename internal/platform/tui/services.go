package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/plusminus/internal/config"
	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/leaderboard"
	"github.com/vovakirdan/plusminus/internal/puzzle"
	"github.com/vovakirdan/plusminus/internal/storage"
)

// Services are the collaborators a session talks to outside the game.
// Store, Leaderboard and Logger may be nil.
type Services struct {
	Config      config.Config
	Store       *storage.Store
	Leaderboard *leaderboard.Client
	Player      string // name posted to the leaderboard
	Logger      *log.Logger
}

// Leveled is implemented by games that load numbered levels.
type Leveled interface {
	Size() int
	Level() int
	LevelID() string
}

// Recorder is implemented by games that can hand out the current attempt.
type Recorder interface {
	Record() puzzle.GameRecord
}

func (s Services) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

func (s Services) levels() int {
	if s.Config.Puzzle.Levels > 0 {
		return s.Config.Puzzle.Levels
	}
	return config.Default().Puzzle.Levels
}

// hasLeaderboard reports whether levels of size are posted remotely.
func (s Services) hasLeaderboard(size int) bool {
	return s.Leaderboard != nil && s.Config.Leaderboard.HasLeaderboard(size)
}

// saveBest persists a new best result. The store only replaces a worse
// result, so replays of the same finish are harmless.
func (s Services) saveBest(ev core.Event) {
	if s.Store == nil {
		return
	}
	if err := s.Store.SaveBest(ev.LevelID, ev.Score, ev.Moves); err != nil {
		s.logger().Warn("could not save best result", "level", ev.LevelID, "error", err)
	}
}

// saveGame records a finished attempt.
func (s Services) saveGame(rec puzzle.GameRecord) {
	if s.Store == nil {
		return
	}
	id, err := s.Store.SaveGame(storage.RecordFromEngine(rec, s.Player))
	if err != nil {
		s.logger().Warn("could not save game", "level", rec.LevelID, "error", err)
		return
	}
	s.logger().Debug("game saved", "id", id, "level", rec.LevelID, "score", rec.Score)
}

// rememberLevel stores the level to continue from on the next run.
func (s Services) rememberLevel(size, level int) {
	if s.Store == nil {
		return
	}
	if err := s.Store.SetLastLevel(size, level); err != nil {
		s.logger().Warn("could not save last level", "error", err)
	}
}
