package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"pinpad/internal/constants"
	"pinpad/internal/pinentry"
)

// PadButton is a keypad button that also reports touch phases and, when
// configured, a long press.
type PadButton struct {
	widget.Button

	onTouch     func(pinentry.TouchPhase)
	onLongPress func()
	delay       time.Duration
	dispatch    func(func())

	mu        sync.Mutex
	timer     *time.Timer
	pressed   bool
	longFired bool
}

// NewPadButton creates a new pad button
func NewPadButton(label string, onTapped func(), onTouch func(pinentry.TouchPhase)) *PadButton {
	b := &PadButton{
		onTouch:  onTouch,
		dispatch: fyne.Do,
	}
	b.Text = label
	b.OnTapped = onTapped
	b.ExtendBaseWidget(b)
	return b
}

// SetLongPress makes holding the button for delay call fn instead of the
// tap handler. A secondary tap also counts as a long press.
func (b *PadButton) SetLongPress(delay time.Duration, fn func()) {
	b.mu.Lock()
	b.delay = delay
	b.onLongPress = fn
	b.mu.Unlock()
}

// MouseDown implements desktop.Mouseable
func (b *PadButton) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	b.touch(pinentry.TouchDown)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pressed = true
	b.longFired = false
	if b.onLongPress == nil || b.delay <= 0 {
		return
	}
	b.stopTimerLocked()
	b.timer = time.AfterFunc(b.delay, func() {
		b.dispatch(b.fireLongPress)
	})
}

// MouseUp implements desktop.Mouseable
func (b *PadButton) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	b.pressed = false
	b.stopTimerLocked()
	b.mu.Unlock()

	b.touch(pinentry.TouchUp)
}

// MouseOut cancels a press that leaves the button
func (b *PadButton) MouseOut() {
	b.Button.MouseOut()

	b.mu.Lock()
	wasPressed := b.pressed
	b.pressed = false
	b.stopTimerLocked()
	b.mu.Unlock()

	if wasPressed {
		b.touch(pinentry.TouchCancel)
	}
}

// Tapped runs the tap handler unless the press already fired a long press
func (b *PadButton) Tapped(ev *fyne.PointEvent) {
	b.mu.Lock()
	suppressed := b.longFired
	b.longFired = false
	b.mu.Unlock()

	if suppressed {
		return
	}
	b.Button.Tapped(ev)
}

// TappedSecondary is the long press for pointer devices without a hold
func (b *PadButton) TappedSecondary(_ *fyne.PointEvent) {
	b.mu.Lock()
	fn := b.onLongPress
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// MinSize keeps pad buttons large enough to hit
func (b *PadButton) MinSize() fyne.Size {
	return b.Button.MinSize().Max(fyne.NewSize(constants.PadButtonMinSize, constants.PadButtonMinSize))
}

// TypedKey ignores keyboard activation; keys are routed by the KeyManager
func (b *PadButton) TypedKey(_ *fyne.KeyEvent) {}

// TypedRune ignores keyboard activation
func (b *PadButton) TypedRune(_ rune) {}

func (b *PadButton) fireLongPress() {
	b.mu.Lock()
	if !b.pressed {
		b.mu.Unlock()
		return
	}
	b.longFired = true
	b.timer = nil
	fn := b.onLongPress
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (b *PadButton) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *PadButton) touch(phase pinentry.TouchPhase) {
	if b.onTouch != nil {
		b.onTouch(phase)
	}
}
