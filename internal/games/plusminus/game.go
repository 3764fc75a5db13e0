// Package plusminus adapts the puzzle engine to the registry.Game
// interface: one registered game per grid size.
package plusminus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/plusminus/internal/config"
	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/puzzle"
	"github.com/vovakirdan/plusminus/internal/registry"
)

// Settings are shared by every game created after Configure.
type Settings struct {
	Puzzle config.PuzzleConfig
	Store  puzzle.ScoreStore // may be nil
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Puzzle: config.Default().Puzzle}
)

// Configure replaces the shared settings and registers a game for every
// configured grid size that has none yet.
func Configure(s Settings) {
	settingsMu.Lock()
	settings = s
	settingsMu.Unlock()

	for _, size := range s.Puzzle.GridSizes {
		registry.RegisterIfAbsent(GameID(size), factory(size))
	}
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	for _, size := range config.Default().Puzzle.GridSizes {
		registry.Register(GameID(size), factory(size))
	}
}

func factory(size int) registry.Factory {
	return func() registry.Game {
		return New(size)
	}
}

// GameID returns the registry ID of a grid size, e.g. "6x6".
func GameID(size int) string {
	return fmt.Sprintf("%dx%d", size, size)
}

// SizeFromID parses a registry ID produced by GameID.
func SizeFromID(id string) (int, error) {
	a, b, ok := strings.Cut(id, "x")
	if !ok || a != b {
		return 0, fmt.Errorf("plusminus: bad game id %q", id)
	}
	n, err := strconv.Atoi(a)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("plusminus: bad game id %q", id)
	}
	return n, nil
}

// Game implements registry.Game for one grid size.
type Game struct {
	size   int
	level  int // 1-indexed
	cfg    config.PuzzleConfig
	store  puzzle.ScoreStore
	engine *puzzle.Engine

	snap    puzzle.Snapshot
	cursor  puzzle.Pos // start-tile selection before the first move
	best    puzzle.BestResult
	hasBest bool
	last    *puzzle.FinishEvent // most recent finish, for the overlay
	message string
	loadErr error

	// Screen dimensions
	screenW int
	screenH int

	tooSmall bool
}

// New creates a game for size×size boards using the current settings.
func New(size int) *Game {
	s := currentSettings()
	return &Game{
		size:   size,
		level:  1,
		cfg:    s.Puzzle,
		store:  s.Store,
		engine: puzzle.New(s.Puzzle.GenOptions(size), puzzle.WithStore(s.Store)),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.size)
}

// Title returns the display name.
func (g *Game) Title() string {
	return fmt.Sprintf("Plus Minus %dx%d", g.size, g.size)
}

// Size returns the grid dimension.
func (g *Game) Size() int {
	return g.size
}

// Level returns the current level number.
func (g *Game) Level() int {
	return g.level
}

// LevelID returns the identifier of the loaded level.
func (g *Game) LevelID() string {
	return levelgen.LevelID(g.size, g.level)
}

// Reset loads level cfg.Level and starts a fresh attempt.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.level = g.clampLevel(cfg.Level)
	g.loadLevel()
	g.checkScreenSize()
}

// Resize adapts the layout to a new screen size, keeping progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) clampLevel(level int) int {
	return max(1, min(level, g.cfg.Levels))
}

func (g *Game) loadLevel() {
	g.message = ""
	g.last = nil
	snap, err := g.engine.NewGame(g.LevelID())
	g.loadErr = err
	g.snap = snap
	g.cursor = puzzle.Pos{Row: g.size / 2, Col: g.size / 2}
	g.refreshBest()
}

func (g *Game) refreshBest() {
	g.best, g.hasBest = puzzle.BestResult{}, false
	if g.store == nil {
		return
	}
	best, ok, err := g.store.Best(g.LevelID())
	if err != nil {
		g.message = "best result unavailable"
		return
	}
	g.best, g.hasBest = best, ok
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies the actions of one tick in arrival order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event
	if g.loadErr != nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions {
		events = append(events, g.apply(a)...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) apply(a core.Action) []core.Event {
	if dr, dc, ok := a.Direction(); ok {
		if !g.snap.Started {
			g.moveCursor(dr, dc)
			return nil
		}
		return g.observe(g.engine.Step(dr, dc))
	}

	switch a {
	case core.ActionConfirm:
		if !g.snap.Started {
			return g.observe(g.engine.AttemptMove(g.cursor.Row, g.cursor.Col))
		}
	case core.ActionUndo:
		started, start := g.snap.Started, g.snap.Position
		events := g.observe(g.engine.Undo(), nil)
		if started && !g.snap.Started {
			g.cursor = start
		}
		return events
	case core.ActionRedo:
		return g.observe(g.engine.Redo(), nil)
	case core.ActionRestart:
		g.message = ""
		g.last = nil
		return g.observe(g.engine.Restart(), nil)
	case core.ActionNextLevel:
		return g.switchLevel(g.level + 1)
	case core.ActionPrevLevel:
		return g.switchLevel(g.level - 1)
	}
	return nil
}

func (g *Game) switchLevel(level int) []core.Event {
	level = g.clampLevel(level)
	if level == g.level {
		return nil
	}
	g.level = level
	g.loadLevel()
	return []core.Event{{Kind: core.EventLevelLoaded, LevelID: g.LevelID()}}
}

func (g *Game) moveCursor(dr, dc int) {
	next := g.cursor.Add(dr, dc)
	next.Row = max(0, min(next.Row, g.size-1))
	next.Col = max(0, min(next.Col, g.size-1))
	g.cursor = next
}

// observe records the snapshot of an engine operation and turns what it
// reported into platform events.
func (g *Game) observe(s puzzle.Snapshot, err error) []core.Event {
	g.snap = s
	if err != nil {
		if errors.Is(err, puzzle.ErrIllegalMove) || errors.Is(err, puzzle.ErrGameFinished) {
			g.message = "can't move there"
			return []core.Event{{Kind: core.EventIllegalMove, LevelID: s.LevelID, Err: err}}
		}
		g.message = err.Error()
		return nil
	}
	g.message = ""
	if !s.Finished {
		g.last = nil
	}

	ev := s.Finish
	if ev == nil {
		return nil
	}
	g.last = ev
	events := []core.Event{{
		Kind:    core.EventFinished,
		LevelID: ev.LevelID,
		Score:   ev.Result.Score,
		Moves:   ev.Result.Moves,
		Err:     ev.Err,
	}}
	if ev.NewBest {
		g.best, g.hasBest = ev.Result, true
		events = append(events, core.Event{
			Kind:    core.EventNewBest,
			LevelID: ev.LevelID,
			Score:   ev.Result.Score,
			Moves:   ev.Result.Moves,
		})
	}
	return events
}

// Click moves to the tile under screen cell (x, y). Before the first move
// it picks the starting tile.
func (g *Game) Click(x, y int) core.StepResult {
	if g.loadErr != nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	p, ok := g.tileAt(x, y)
	if !ok {
		return core.StepResult{State: g.State()}
	}
	if !g.snap.Started {
		g.cursor = p
	}
	events := g.observe(g.engine.AttemptMove(p.Row, p.Col))
	return core.StepResult{State: g.State(), Events: events}
}

// Record returns the current attempt for persistence.
func (g *Game) Record() puzzle.GameRecord {
	return g.engine.Record()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.Score,
		Moves:    g.snap.Moves,
		GameOver: g.snap.Finished,
		Paused:   g.tooSmall || g.loadErr != nil,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter: Start | U: Undo | Y: Redo | R: Restart | N/P: Level | Q: Quit"
}
