package keymanager

import (
	"fyne.io/fyne/v2"

	"pinpad/internal/pinentry"
)

// GlobalKeyHandler sits at the bottom of the stack and receives keys the
// pad declined
type GlobalKeyHandler struct {
	entry      ActionHandler
	debugPrint func(format string, args ...interface{})
}

// NewGlobalKeyHandler creates a new global key handler
func NewGlobalKeyHandler(entry ActionHandler, debugPrint func(format string, args ...interface{})) *GlobalKeyHandler {
	return &GlobalKeyHandler{
		entry:      entry,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (gh *GlobalKeyHandler) GetName() string {
	return "Global"
}

// OnKeyDown clears the entry on Escape; the controller still gates it
func (gh *GlobalKeyHandler) OnKeyDown(ev *fyne.KeyEvent) bool {
	if ev.Name == fyne.KeyEscape {
		gh.debugPrint("Global: Escape - clearing entry")
		gh.entry.Handle(pinentry.ClearAll)
		return true
	}
	gh.debugPrint("Global: unhandled key down %s (scancode %d)", ev.Name, ev.Physical.ScanCode)
	return false
}

// OnKeyUp handles key release events
func (gh *GlobalKeyHandler) OnKeyUp(ev *fyne.KeyEvent) bool {
	return false
}

// OnTypedKey handles typed key events
func (gh *GlobalKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	return ev.Name == fyne.KeyEscape
}

// OnTypedRune handles text input
func (gh *GlobalKeyHandler) OnTypedRune(r rune) bool {
	return false
}
