package puzzle

import (
	"fmt"

	"github.com/vovakirdan/plusminus/internal/levelgen"
)

// GameRecord is the state of one playthrough attempt.
type GameRecord struct {
	LevelID  string
	History  History
	Score    int
	Sign     int // applied to the next move's value
	Finished bool
}

func newRecord(levelID string) GameRecord {
	return GameRecord{
		LevelID: levelID,
		History: NewHistory(),
		Sign:    1,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the store consulted when a game finishes.
func WithStore(s ScoreStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithFinishListener registers fn to receive finish events.
func WithFinishListener(fn func(FinishEvent)) Option {
	return func(e *Engine) {
		e.onFinish = fn
	}
}

// WithGenerator replaces the seeded level generator, e.g. with fixed boards in tests.
func WithGenerator(gen func(levelID string) ([][]int, error)) Option {
	return func(e *Engine) {
		e.generate = gen
	}
}

// Engine runs one puzzle at a time.
type Engine struct {
	generate func(levelID string) ([][]int, error)
	store    ScoreStore
	onFinish func(FinishEvent)

	board  *Board
	record GameRecord
	event  *FinishEvent // set by the operation that finished the game
}

// New creates an engine generating boards with opts.
func New(opts levelgen.Options, options ...Option) *Engine {
	e := &Engine{
		generate: func(levelID string) ([][]int, error) {
			return levelgen.Generate(levelID, opts)
		},
	}
	for _, o := range options {
		o(e)
	}
	return e
}

// NewGame loads levelID and starts a fresh attempt.
func (e *Engine) NewGame(levelID string) (Snapshot, error) {
	values, err := e.generate(levelID)
	if err != nil {
		return Snapshot{}, err
	}
	board, err := NewBoard(values)
	if err != nil {
		return Snapshot{}, err
	}
	e.board = board
	e.record = newRecord(levelID)
	e.event = nil
	return e.Snapshot(), nil
}

// Restart discards the current attempt and starts the same level again.
func (e *Engine) Restart() Snapshot {
	if e.board == nil {
		return e.Snapshot()
	}
	e.board.reset()
	e.record = newRecord(e.record.LevelID)
	e.event = nil
	return e.Snapshot()
}

// AttemptMove moves the token to (row, col).
func (e *Engine) AttemptMove(row, col int) (Snapshot, error) {
	if e.board == nil {
		return e.Snapshot(), ErrNoGame
	}
	e.event = nil
	dest := Pos{Row: row, Col: col}
	if err := e.checkMove(dest); err != nil {
		return e.Snapshot(), err
	}

	val := e.board.Tile(dest).Value
	e.board.setTaken(dest, true)
	e.record.History.Push(Move{Pos: dest, Value: val})
	e.apply(val)
	return e.Snapshot(), nil
}

// Step moves the token one tile in the given direction from the current position.
func (e *Engine) Step(dRow, dCol int) (Snapshot, error) {
	if e.board == nil {
		return e.Snapshot(), ErrNoGame
	}
	head, ok := e.record.History.Head()
	if !ok {
		e.event = nil
		return e.Snapshot(), fmt.Errorf("%w: no position to step from", ErrIllegalMove)
	}
	dest := head.Add(dRow, dCol)
	return e.AttemptMove(dest.Row, dest.Col)
}

func (e *Engine) checkMove(dest Pos) error {
	if e.record.Finished {
		return ErrGameFinished
	}
	if !e.board.InBounds(dest) {
		return fmt.Errorf("%w: %v is out of bounds", ErrIllegalMove, dest)
	}
	if e.board.Tile(dest).Taken {
		return fmt.Errorf("%w: %v is taken", ErrIllegalMove, dest)
	}
	if head, ok := e.record.History.Head(); ok && !head.Adjacent(dest) {
		return fmt.Errorf("%w: %v is not adjacent to %v", ErrIllegalMove, dest, head.Pos)
	}
	return nil
}

// Undo takes back the last applied move. Undoing the first move (or
// undoing with no move made) restarts the level.
func (e *Engine) Undo() Snapshot {
	if e.board == nil {
		return e.Snapshot()
	}
	if e.record.History.Current() <= 0 {
		return e.Restart()
	}

	e.event = nil
	m, _ := e.record.History.Back()
	// The sign must be restored first: it was flipped after m was scored.
	e.record.Sign = -e.record.Sign
	e.record.Score -= e.record.Sign * m.Value
	e.board.setTaken(m.Pos, false)
	e.record.Finished = false
	return e.Snapshot()
}

// Redo replays the next move of the undone future. It is a no-op when
// nothing was undone or a new move discarded the future.
func (e *Engine) Redo() Snapshot {
	if e.board == nil {
		return e.Snapshot()
	}
	e.event = nil
	m, ok := e.record.History.Forward()
	if !ok {
		return e.Snapshot()
	}
	e.board.setTaken(m.Pos, true)
	e.apply(m.Value)
	return e.Snapshot()
}

// apply scores a move that has already been recorded and marked taken.
func (e *Engine) apply(val int) {
	e.record.Score += e.record.Sign * val
	e.record.Sign = -e.record.Sign

	head, _ := e.record.History.Head()
	if len(e.board.Neighbours(head.Pos)) > 0 {
		return
	}
	e.record.Finished = true

	ev := checkBest(e.store, e.record.LevelID, BestResult{
		Score: e.record.Score,
		Moves: e.record.History.Applied(),
	})
	e.event = &ev
	if e.onFinish != nil {
		e.onFinish(ev)
	}
}

// Legal returns the destinations the next AttemptMove may target.
// Before the first move every tile is legal.
func (e *Engine) Legal() []Pos {
	if e.board == nil || e.record.Finished {
		return nil
	}
	head, ok := e.record.History.Head()
	if !ok {
		return e.board.Untaken()
	}
	return e.board.Neighbours(head.Pos)
}

// Board returns a copy of the current tiles.
func (e *Engine) Board() [][]Tile {
	if e.board == nil {
		return nil
	}
	return e.board.Tiles()
}

// Record returns a copy of the current attempt.
func (e *Engine) Record() GameRecord {
	r := e.record
	r.History = History{
		moves:   append([]Move(nil), e.record.History.moves...),
		current: e.record.History.current,
	}
	return r
}

// Loaded reports whether a level is loaded.
func (e *Engine) Loaded() bool {
	return e.board != nil
}
