package keymanager

import (
	"testing"

	"fyne.io/fyne/v2"
)

func dummyDebug(format string, args ...interface{}) {}

// recordingHandler records the events it sees and returns a fixed answer
type recordingHandler struct {
	name   string
	handle bool
	downs  []fyne.KeyName
	runes  []rune
}

func (r *recordingHandler) GetName() string { return r.name }
func (r *recordingHandler) OnKeyDown(ev *fyne.KeyEvent) bool {
	r.downs = append(r.downs, ev.Name)
	return r.handle
}
func (r *recordingHandler) OnKeyUp(ev *fyne.KeyEvent) bool    { return r.handle }
func (r *recordingHandler) OnTypedKey(ev *fyne.KeyEvent) bool { return r.handle }
func (r *recordingHandler) OnTypedRune(ru rune) bool {
	r.runes = append(r.runes, ru)
	return r.handle
}

func TestPushPop(t *testing.T) {
	km := NewKeyManager(dummyDebug)
	if km.PopHandler() != nil {
		t.Error("Pop on empty stack should return nil")
	}

	a := &recordingHandler{name: "a"}
	b := &recordingHandler{name: "b"}
	km.PushHandler(a)
	km.PushHandler(b)

	if km.GetStackSize() != 2 {
		t.Fatalf("Expected stack size 2, got %d", km.GetStackSize())
	}
	if km.GetCurrentHandler() != b {
		t.Error("Top handler should be the last pushed")
	}
	names := km.ListHandlers()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Unexpected handler list %v", names)
	}
	if km.PopHandler() != b || km.GetCurrentHandler() != a {
		t.Error("Pop should remove the top handler")
	}
}

func TestFallThroughWhileDeclined(t *testing.T) {
	km := NewKeyManager(dummyDebug)
	bottom := &recordingHandler{name: "bottom", handle: true}
	top := &recordingHandler{name: "top", handle: false}
	km.PushHandler(bottom)
	km.PushHandler(top)

	km.HandleKeyDown(&fyne.KeyEvent{Name: fyne.KeyEscape})

	if len(top.downs) != 1 || len(bottom.downs) != 1 {
		t.Errorf("Declined event should reach both handlers, got top=%v bottom=%v", top.downs, bottom.downs)
	}
}

func TestHandledEventStops(t *testing.T) {
	km := NewKeyManager(dummyDebug)
	bottom := &recordingHandler{name: "bottom", handle: true}
	top := &recordingHandler{name: "top", handle: true}
	km.PushHandler(bottom)
	km.PushHandler(top)

	km.HandleKeyDown(&fyne.KeyEvent{Name: fyne.Key1})
	km.HandleTypedRune('1')

	if len(bottom.downs) != 0 || len(bottom.runes) != 0 {
		t.Error("Handled events should not reach lower handlers")
	}
	if len(top.runes) != 1 || top.runes[0] != '1' {
		t.Errorf("Expected rune '1' at top, got %v", top.runes)
	}
}

func TestRemoveHandler(t *testing.T) {
	km := NewKeyManager(nil)
	a := &recordingHandler{name: "a"}
	busy := NewBusyKeyHandler()
	b := &recordingHandler{name: "b"}
	km.PushHandler(a)
	km.PushHandler(busy)
	km.PushHandler(b)

	if !km.RemoveHandler(busy) {
		t.Fatal("RemoveHandler should find the busy guard")
	}
	if km.RemoveHandler(busy) {
		t.Error("Second RemoveHandler should report false")
	}
	names := km.ListHandlers()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Unexpected handler list %v", names)
	}
}

func TestBusyGuardSwallowsEverything(t *testing.T) {
	km := NewKeyManager(dummyDebug)
	below := &recordingHandler{name: "below", handle: true}
	km.PushHandler(below)
	km.PushHandler(NewBusyKeyHandler())

	km.HandleKeyDown(&fyne.KeyEvent{Name: fyne.Key5})
	km.HandleTypedRune('5')

	if len(below.downs) != 0 || len(below.runes) != 0 {
		t.Error("Busy guard should swallow all input")
	}
}
