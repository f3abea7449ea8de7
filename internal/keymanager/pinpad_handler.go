package keymanager

import (
	"fyne.io/fyne/v2"

	"pinpad/internal/pinentry"
)

// ActionHandler consumes logical entry actions
type ActionHandler interface {
	Handle(a pinentry.Action)
}

// PinPadKeyHandler feeds hardware keys through the router into the entry
// controller
type PinPadKeyHandler struct {
	router     *pinentry.Router
	entry      ActionHandler
	debugPrint func(format string, args ...interface{})
}

// NewPinPadKeyHandler creates a new PIN pad key handler
func NewPinPadKeyHandler(router *pinentry.Router, entry ActionHandler, debugPrint func(format string, args ...interface{})) *PinPadKeyHandler {
	return &PinPadKeyHandler{
		router:     router,
		entry:      entry,
		debugPrint: debugPrint,
	}
}

// GetName returns the name of this handler
func (ph *PinPadKeyHandler) GetName() string {
	return "PinPad"
}

// OnKeyDown routes a key press; declined keys fall through
func (ph *PinPadKeyHandler) OnKeyDown(ev *fyne.KeyEvent) bool {
	action, ok := ph.router.Route(pinentry.Down(TranslateKey(ev)))
	if !ok {
		return false
	}
	ph.debugPrint("PinPad: %s -> %s", ev.Name, action)
	ph.entry.Handle(action)
	return true
}

// OnKeyUp handles key release events; releases never produce actions
func (ph *PinPadKeyHandler) OnKeyUp(ev *fyne.KeyEvent) bool {
	_, ok := ph.router.Route(pinentry.Up(TranslateKey(ev)))
	return ok
}

// OnTypedKey consumes the typed echo of keys already routed on key down
func (ph *PinPadKeyHandler) OnTypedKey(ev *fyne.KeyEvent) bool {
	_, ok := ph.router.Route(pinentry.Down(TranslateKey(ev)))
	return ok
}

// OnTypedRune consumes digit runes for the same reason
func (ph *PinPadKeyHandler) OnTypedRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == ' '
}
