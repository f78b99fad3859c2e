package core

// Action represents a semantic board action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move cursor up a row
	ActionDown             // S, Down arrow - move cursor down a row
	ActionLeft             // A, Left arrow - move cursor to previous slot
	ActionRight            // D, Right arrow - move cursor to next slot
	ActionToggleRun        // Space - start or stop the board
	ActionRestart          // R - reset balls and collector
	ActionClear            // C - remove every piece
	ActionPlace            // Enter - place the selected piece at the cursor
	ActionRemove           // X, Backspace - remove the piece under the cursor
	ActionFlip             // F - flip the piece under the cursor
	ActionNextPiece        // Tab - cycle the piece palette
	ActionFaster           // + - increase animation speed
	ActionSlower           // - - decrease animation speed
	ActionQuit             // Q, Ctrl+C - exit
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
	case ActionToggleRun:
		return "ToggleRun"
	case ActionRestart:
		return "Restart"
	case ActionClear:
		return "Clear"
	case ActionPlace:
		return "Place"
	case ActionRemove:
		return "Remove"
	case ActionFlip:
		return "Flip"
	case ActionNextPiece:
		return "NextPiece"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame plus an
// optional pointer click in screen cells.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Click is the last pointer press this frame, valid when Clicked is set.
	Click   Point
	Clicked bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetClick records a pointer press at the given screen cell.
func (f *InputFrame) SetClick(x, y int) {
	f.Click = P(x, y)
	f.Clicked = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether the frame carries no action and no click.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return !f.Clicked
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Clicked = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Click = f.Click
	clone.Clicked = f.Clicked
	return clone
}
