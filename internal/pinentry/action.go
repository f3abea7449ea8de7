package pinentry

import "fmt"

// ActionKind tags a logical entry action.
type ActionKind int

const (
	ActionDigit ActionKind = iota
	ActionDelete
	ActionSubmit
	ActionClearAll
)

// String returns a string representation of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionDigit:
		return "digit"
	case ActionDelete:
		return "delete"
	case ActionSubmit:
		return "submit"
	case ActionClearAll:
		return "clear-all"
	default:
		return "unknown"
	}
}

// Action is the device independent meaning of one input event.
// Digit is only meaningful for ActionDigit and is always in 0..9.
type Action struct {
	Kind  ActionKind
	Digit int
}

// Digit returns the action for pressing digit n.
func Digit(n int) Action { return Action{Kind: ActionDigit, Digit: n} }

var (
	Delete   = Action{Kind: ActionDelete}
	Submit   = Action{Kind: ActionSubmit}
	ClearAll = Action{Kind: ActionClearAll}
)

func (a Action) String() string {
	if a.Kind == ActionDigit {
		return fmt.Sprintf("digit(%d)", a.Digit)
	}
	return a.Kind.String()
}
