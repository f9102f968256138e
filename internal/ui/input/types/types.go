package types

import tea "github.com/charmbracelet/bubbletea"

// Focus is the widget that receives keys
type Focus int

const (
	FocusInput Focus = iota
	FocusButton
)

func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusButton:
		return "button"
	default:
		return "unknown"
	}
}

// Next returns the following widget in the focus ring
func (f Focus) Next() Focus {
	if f == FocusInput {
		return FocusButton
	}
	return FocusInput
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	HasContent() bool
}

// ModeHandler handles input while one widget has focus
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when the widget gains focus
	Enter(ctx Context) []Action

	// Exit is called when the widget loses focus
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
