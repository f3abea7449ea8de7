package pinentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHaptic struct{ pulses int }

func (h *countingHaptic) Pulse() { h.pulses++ }

func TestRouteDigitsFromBothRanges(t *testing.T) {
	r := NewRouter(nil)

	for k := 0; k <= 9; k++ {
		for _, code := range []KeyCode{DigitKey(k), NumpadKey(k)} {
			a, ok := r.Route(Down(code))
			require.True(t, ok, "code %d", code)
			assert.Equal(t, Digit(k), a)
		}
	}
}

func TestRoutePriority(t *testing.T) {
	r := NewRouter(nil)

	tests := []struct {
		name string
		code KeyCode
		want Action
		ok   bool
	}{
		{"enter", KeyEnter, Submit, true},
		{"numpad enter", KeyNumpadEnter, Submit, true},
		{"space", KeySpace, Submit, true},
		{"dpad center", KeyDpadCenter, Submit, true},
		{"delete", KeyDelete, Delete, true},
		{"escape", KeyEscape, Action{}, false},
		{"unknown", KeyUnknown, Action{}, false},
		{"below digit range", Key0 - 1, Action{}, false},
		{"above digit range", Key9 + 1, Action{}, false},
		{"above numpad range", KeyNumpad9 + 1, Action{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := r.Route(Down(tc.code))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, a)
		})
	}
}

func TestRouteKeyUpAlwaysDeclined(t *testing.T) {
	r := NewRouter(nil)

	codes := []KeyCode{KeyEnter, KeyDelete, KeySpace, KeyEscape}
	for k := 0; k <= 9; k++ {
		codes = append(codes, DigitKey(k), NumpadKey(k))
	}
	for _, code := range codes {
		_, ok := r.Route(Up(code))
		assert.False(t, ok, "key-up of %d must be declined", code)
	}
}

func TestTouchPulsesOnDownOnly(t *testing.T) {
	h := &countingHaptic{}
	r := NewRouter(h)

	r.Touch(TouchDown)
	r.Touch(TouchUp)
	r.Touch(TouchCancel)
	r.Touch(TouchDown)

	assert.Equal(t, 2, h.pulses)
}

func TestLongPressDeletePulses(t *testing.T) {
	h := &countingHaptic{}
	r := NewRouter(h)

	assert.Equal(t, ClearAll, r.LongPressDelete())
	assert.Equal(t, 1, h.pulses)
}

func TestNilHapticIsSafe(t *testing.T) {
	r := NewRouter(nil)
	assert.NotPanics(t, func() {
		r.Touch(TouchDown)
		r.LongPressDelete()
	})
}
