package puzzle

// BestResult is the best finished attempt recorded for a level.
type BestResult struct {
	Score int
	Moves int
}

// Beats reports whether r is better than other: a higher score, or the same
// score reached in fewer moves.
func (r BestResult) Beats(other BestResult) bool {
	if r.Score != other.Score {
		return r.Score > other.Score
	}
	return r.Moves < other.Moves
}

// ScoreStore holds the best result of each level. A missing record is
// reported with ok == false and counts as a score of negative infinity.
// The engine only reads; SaveBest is called by whoever handles the
// finish event.
type ScoreStore interface {
	Best(levelID string) (best BestResult, ok bool, err error)
	SaveBest(levelID string, score, moves int) error
}

// FinishEvent is emitted every time a game reaches the finished state,
// including when a redo re-enters it.
type FinishEvent struct {
	LevelID     string
	Result      BestResult // the finished attempt
	Previous    BestResult // stored best before this attempt, if HadPrevious
	HadPrevious bool
	NewBest     bool  // Result should replace the stored best
	Err         error // store read failure; NewBest is false when set
}

// checkBest compares a finished attempt against the store.
func checkBest(store ScoreStore, levelID string, result BestResult) FinishEvent {
	ev := FinishEvent{LevelID: levelID, Result: result}
	if store == nil {
		ev.NewBest = true
		return ev
	}

	prev, ok, err := store.Best(levelID)
	if err != nil {
		ev.Err = err
		return ev
	}
	ev.Previous = prev
	ev.HadPrevious = ok
	ev.NewBest = !ok || result.Beats(prev)
	return ev
}
