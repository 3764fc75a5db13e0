package puzzle

import "errors"

var (
	// ErrIllegalMove is returned for destinations that are out of bounds,
	// already taken or not adjacent to the current position.
	ErrIllegalMove = errors.New("puzzle: illegal move")

	// ErrGameFinished is returned for moves attempted after the game ended.
	ErrGameFinished = errors.New("puzzle: game finished")

	// ErrNoGame is returned when no level has been loaded.
	ErrNoGame = errors.New("puzzle: no game loaded")
)
