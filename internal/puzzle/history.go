package puzzle

// Move is a visited coordinate plus the value observed there.
type Move struct {
	Pos
	Value int
}

// History is an ordered move list with a cursor. Moves after the cursor
// form the redo-able future.
type History struct {
	moves   []Move
	current int
}

// NewHistory returns an empty history (cursor -1).
func NewHistory() History {
	return History{current: -1}
}

// Current returns the cursor index, -1 before the first move.
func (h *History) Current() int {
	return h.current
}

// Len returns the number of recorded moves including the future.
func (h *History) Len() int {
	return len(h.moves)
}

// Applied returns the number of moves up to and including the cursor.
func (h *History) Applied() int {
	return h.current + 1
}

// At returns the move at index i.
func (h *History) At(i int) Move {
	return h.moves[i]
}

// Head returns the move at the cursor.
func (h *History) Head() (Move, bool) {
	if h.current < 0 {
		return Move{}, false
	}
	return h.moves[h.current], true
}

// Push discards the future beyond the cursor, appends m and advances the cursor.
func (h *History) Push(m Move) {
	h.moves = append(h.moves[:h.current+1], m)
	h.current++
}

// CanRedo reports whether a future move exists.
func (h *History) CanRedo() bool {
	return h.current >= 0 && h.current < len(h.moves)-1
}

// Back returns the move at the cursor and moves the cursor one step back.
func (h *History) Back() (Move, bool) {
	if h.current < 0 {
		return Move{}, false
	}
	m := h.moves[h.current]
	h.current--
	return m, true
}

// Forward advances the cursor into the future and returns the move there.
func (h *History) Forward() (Move, bool) {
	if !h.CanRedo() {
		return Move{}, false
	}
	h.current++
	return h.moves[h.current], true
}

// Path returns the applied moves, oldest first. The slice is a copy.
func (h *History) Path() []Move {
	out := make([]Move, h.current+1)
	copy(out, h.moves[:h.current+1])
	return out
}
