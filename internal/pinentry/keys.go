package pinentry

// KeyCode identifies a key independently of the toolkit that reported it.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyNumpadEnter
	KeySpace
	KeyDpadCenter
	KeyDelete
	KeyEscape
)

// Main row digits. The range must stay contiguous and ordered 0-9.
const (
	Key0 KeyCode = 100 + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Numeric keypad digits. The range must stay contiguous and ordered 0-9.
const (
	KeyNumpad0 KeyCode = 200 + iota
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
)

// KeyAction is the transition a key event reports.
type KeyAction int

const (
	KeyActionDown KeyAction = iota
	KeyActionUp
)

// KeyEvent is a raw key transition.
type KeyEvent struct {
	Code   KeyCode
	Action KeyAction
}

// Down builds a key-down event for code.
func Down(code KeyCode) KeyEvent { return KeyEvent{Code: code, Action: KeyActionDown} }

// Up builds a key-up event for code.
func Up(code KeyCode) KeyEvent { return KeyEvent{Code: code, Action: KeyActionUp} }

// IsConfirmKey reports whether code is an affirmative key.
func IsConfirmKey(code KeyCode) bool {
	switch code {
	case KeyEnter, KeyNumpadEnter, KeySpace, KeyDpadCenter:
		return true
	}
	return false
}

// DigitKey returns the main row key for digit n.
func DigitKey(n int) KeyCode { return Key0 + KeyCode(n) }

// NumpadKey returns the keypad key for digit n.
func NumpadKey(n int) KeyCode { return KeyNumpad0 + KeyCode(n) }
