package keymanager

import (
	"fyne.io/fyne/v2"
)

// UnlockedDialogInterface defines the interface needed by UnlockedDialogKeyHandler
type UnlockedDialogInterface interface {
	Relock()
	Quit()
}

// UnlockedDialogKeyHandler handles keyboard events for the unlocked dialog
type UnlockedDialogKeyHandler struct {
	dialog     UnlockedDialogInterface
	debugPrint func(format string, args ...interface{})
}

// NewUnlockedDialogKeyHandler creates a new unlocked dialog key handler
func NewUnlockedDialogKeyHandler(d UnlockedDialogInterface, debugPrint func(format string, args ...interface{})) *UnlockedDialogKeyHandler {
	return &UnlockedDialogKeyHandler{
		dialog:     d,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (uh *UnlockedDialogKeyHandler) GetName() string {
	return "UnlockedDialog"
}

// OnKeyDown consumes all key down events to keep them away from the pad
func (uh *UnlockedDialogKeyHandler) OnKeyDown(ev *fyne.KeyEvent) bool {
	return true
}

// OnKeyUp consumes all key up events
func (uh *UnlockedDialogKeyHandler) OnKeyUp(ev *fyne.KeyEvent) bool {
	return true
}

// OnTypedKey handles typed key events
func (uh *UnlockedDialogKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	switch ev.Name {
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeySpace:
		uh.debugPrint("UnlockedDialog: %s - relocking", ev.Name)
		uh.dialog.Relock()

	case fyne.KeyEscape:
		uh.debugPrint("UnlockedDialog: Escape - quitting")
		uh.dialog.Quit()

	default:
		uh.debugPrint("UnlockedDialog: Consuming key event: %s", ev.Name)
	}
	return true
}

// OnTypedRune consumes all rune events
func (uh *UnlockedDialogKeyHandler) OnTypedRune(r rune) bool {
	return true
}
