package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionMoveLeft           // A, Left arrow
	ActionMoveRight          // D, Right arrow
	ActionJump               // Space, W, Up
	ActionBreak              // X, left mouse button
	ActionPlace              // C, right mouse button
	ActionAimUp              // I - move keyboard aim up
	ActionAimDown            // K - move keyboard aim down
	ActionAimLeft            // J - move keyboard aim left
	ActionAimRight           // L - move keyboard aim right
	ActionHotbarNext         // ], wheel down
	ActionHotbarPrev         // [, wheel up
	ActionRespawn            // R - back to the spawn column
	ActionPause              // P, Escape
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionJump:
		return "Jump"
	case ActionBreak:
		return "Break"
	case ActionPlace:
		return "Place"
	case ActionAimUp:
		return "AimUp"
	case ActionAimDown:
		return "AimDown"
	case ActionAimLeft:
		return "AimLeft"
	case ActionAimRight:
		return "AimRight"
	case ActionHotbarNext:
		return "HotbarNext"
	case ActionHotbarPrev:
		return "HotbarPrev"
	case ActionRespawn:
		return "Respawn"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Point is an integer screen position.
type Point struct {
	X, Y int
}

// InputFrame represents the input state for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Slot is a 1-based hotbar slot picked this frame, 0 if none.
	Slot int

	// Cursor is the last known pointer position in screen cells.
	// Nil when no pointer is available (keyboard-only terminals).
	Cursor *Point
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SelectSlot records a 1-based hotbar slot choice.
func (f *InputFrame) SelectSlot(n int) {
	f.Slot = n
}

// PointAt records the pointer position.
func (f *InputFrame) PointAt(x, y int) {
	f.Cursor = &Point{X: x, Y: y}
}

// Clear resets the per-frame actions and slot choice.
// The cursor is sticky: it keeps pointing where the mouse last was.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Slot = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Slot = f.Slot
	if f.Cursor != nil {
		p := *f.Cursor
		clone.Cursor = &p
	}
	return clone
}
