package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, K, Up arrow
	ActionDown             // S, J, Down arrow
	ActionLeft             // A, H, Left arrow
	ActionRight            // D, L, Right arrow
	ActionConfirm          // Enter, Space - pick the starting tile
	ActionUndo             // U, Backspace
	ActionRedo             // Ctrl+R, Y
	ActionRestart          // R - restart the level
	ActionNextLevel        // N, ] - load the next level
	ActionPrevLevel        // P, [ - load the previous level
	ActionBack             // B, Escape - go back to menu
	ActionQuit             // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	case ActionRestart:
		return "Restart"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the (row, col) offset for a directional action.
// ok is false for non-directional actions.
func (a Action) Direction() (dRow, dCol int, ok bool) {
	switch a {
	case ActionUp:
		return -1, 0, true
	case ActionDown:
		return 1, 0, true
	case ActionLeft:
		return 0, -1, true
	case ActionRight:
		return 0, 1, true
	}
	return 0, 0, false
}

// InputFrame represents the actions triggered during one UI tick.
// Actions keep arrival order: a puzzle move sequence typed faster than the
// tick rate must be applied in the order it was typed.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Actions: make([]Action, len(f.Actions))}
	copy(clone.Actions, f.Actions)
	return clone
}
