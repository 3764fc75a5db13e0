package puzzle

// Phase is the coarse state of an attempt.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// Mood is the player token's expression, derived from the score sign.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodHappy
	MoodSad
)

// Snapshot is everything a renderer needs after an operation.
type Snapshot struct {
	LevelID  string
	Size     int
	Score    int
	Sign     int // sign applied to the next move
	Finished bool
	Phase    Phase

	Moves    int  // applied moves
	Position Pos  // current token position, valid when Moves > 0
	Started  bool // at least one move applied

	// PlusOnEven reports which checkerboard colour collects the positive
	// sign. It is fixed by the first move; valid when Started.
	PlusOnEven bool

	Legal   []Pos
	Tiles   [][]Tile
	Path    []Move
	CanUndo bool
	CanRedo bool

	// Finish is set on the snapshot returned by the operation that
	// finished the game.
	Finish *FinishEvent
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	if e.board == nil {
		return Snapshot{Phase: PhaseNotStarted}
	}

	h := &e.record.History
	s := Snapshot{
		LevelID:  e.record.LevelID,
		Size:     e.board.Size(),
		Score:    e.record.Score,
		Sign:     e.record.Sign,
		Finished: e.record.Finished,
		Moves:    h.Applied(),
		Legal:    e.Legal(),
		Tiles:    e.board.Tiles(),
		Path:     h.Path(),
		CanUndo:  h.Current() >= 0,
		CanRedo:  h.CanRedo(),
	}
	if head, ok := h.Head(); ok {
		s.Started = true
		s.Position = head.Pos
		s.PlusOnEven = h.At(0).Even()
	}

	switch {
	case s.Finished:
		s.Phase = PhaseFinished
	case s.Started:
		s.Phase = PhaseInProgress
	default:
		s.Phase = PhaseNotStarted
	}

	if e.event != nil {
		ev := *e.event
		s.Finish = &ev
	}
	return s
}

// Mood returns the token expression for the current score.
func (s Snapshot) Mood() Mood {
	switch {
	case s.Score > 0:
		return MoodHappy
	case s.Score < 0:
		return MoodSad
	default:
		return MoodNeutral
	}
}

// IsLegal reports whether p is among the legal destinations.
func (s Snapshot) IsLegal(p Pos) bool {
	for _, q := range s.Legal {
		if q == p {
			return true
		}
	}
	return false
}
