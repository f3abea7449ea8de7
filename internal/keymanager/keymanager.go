package keymanager

import (
	"sync"

	"fyne.io/fyne/v2"
)

// KeyHandler defines the interface for handling keyboard events
type KeyHandler interface {
	// OnKeyDown handles key press events
	OnKeyDown(ev *fyne.KeyEvent) bool // returns true if handled

	// OnKeyUp handles key release events
	OnKeyUp(ev *fyne.KeyEvent) bool // returns true if handled

	// OnTypedKey handles typed key events
	OnTypedKey(ev *fyne.KeyEvent) bool // returns true if handled

	// OnTypedRune handles text input
	OnTypedRune(r rune) bool // returns true if handled

	// GetName returns a descriptive name for this handler (for debugging)
	GetName() string
}

// KeyManager manages a stack of key handlers; events go to the top handler
// first and fall through to the handlers below it while declined
type KeyManager struct {
	handlers   []KeyHandler
	mutex      sync.RWMutex
	debugPrint func(format string, args ...interface{})
}

// NewKeyManager creates a new KeyManager instance
func NewKeyManager(debugPrint func(format string, args ...interface{})) *KeyManager {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &KeyManager{
		handlers:   make([]KeyHandler, 0),
		debugPrint: debugPrint,
	}
}

// PushHandler adds a new key handler to the top of the stack
func (km *KeyManager) PushHandler(handler KeyHandler) {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	km.handlers = append(km.handlers, handler)
	km.debugPrint("KeyManager: Pushed handler '%s', stack size: %d", handler.GetName(), len(km.handlers))
}

// PopHandler removes the top key handler from the stack
func (km *KeyManager) PopHandler() KeyHandler {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	if len(km.handlers) == 0 {
		km.debugPrint("KeyManager: Attempted to pop from empty stack")
		return nil
	}

	handler := km.handlers[len(km.handlers)-1]
	km.handlers = km.handlers[:len(km.handlers)-1]

	km.debugPrint("KeyManager: Popped handler '%s', stack size: %d", handler.GetName(), len(km.handlers))
	return handler
}

// RemoveHandler removes handler wherever it sits in the stack
func (km *KeyManager) RemoveHandler(handler KeyHandler) bool {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	for i := len(km.handlers) - 1; i >= 0; i-- {
		if km.handlers[i] == handler {
			km.handlers = append(km.handlers[:i], km.handlers[i+1:]...)
			km.debugPrint("KeyManager: Removed handler '%s', stack size: %d", handler.GetName(), len(km.handlers))
			return true
		}
	}
	return false
}

// GetCurrentHandler returns the top handler without removing it
func (km *KeyManager) GetCurrentHandler() KeyHandler {
	km.mutex.RLock()
	defer km.mutex.RUnlock()

	if len(km.handlers) == 0 {
		return nil
	}
	return km.handlers[len(km.handlers)-1]
}

// HandleKeyDown routes key down events down the stack
func (km *KeyManager) HandleKeyDown(ev *fyne.KeyEvent) {
	km.dispatch("KeyDown", func(h KeyHandler) bool { return h.OnKeyDown(ev) })
}

// HandleKeyUp routes key up events down the stack
func (km *KeyManager) HandleKeyUp(ev *fyne.KeyEvent) {
	km.dispatch("KeyUp", func(h KeyHandler) bool { return h.OnKeyUp(ev) })
}

// HandleTypedKey routes typed key events down the stack
func (km *KeyManager) HandleTypedKey(ev *fyne.KeyEvent) {
	km.dispatch("TypedKey", func(h KeyHandler) bool { return h.OnTypedKey(ev) })
}

// HandleTypedRune routes text input down the stack
func (km *KeyManager) HandleTypedRune(r rune) {
	km.dispatch("TypedRune", func(h KeyHandler) bool { return h.OnTypedRune(r) })
}

func (km *KeyManager) dispatch(kind string, call func(KeyHandler) bool) bool {
	// snapshot so handlers may push or pop while handling
	km.mutex.RLock()
	stack := append([]KeyHandler(nil), km.handlers...)
	km.mutex.RUnlock()

	for i := len(stack) - 1; i >= 0; i-- {
		if call(stack[i]) {
			km.debugPrint("KeyManager: %s event handled by '%s'", kind, stack[i].GetName())
			return true
		}
	}
	km.debugPrint("KeyManager: %s event not handled", kind)
	return false
}

// GetStackSize returns the current number of handlers in the stack
func (km *KeyManager) GetStackSize() int {
	km.mutex.RLock()
	defer km.mutex.RUnlock()

	return len(km.handlers)
}

// ListHandlers returns the names of all handlers in the stack (for debugging)
func (km *KeyManager) ListHandlers() []string {
	km.mutex.RLock()
	defer km.mutex.RUnlock()

	names := make([]string, len(km.handlers))
	for i, handler := range km.handlers {
		names[i] = handler.GetName()
	}
	return names
}
