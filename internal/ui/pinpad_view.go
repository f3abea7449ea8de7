package ui

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"

	"pinpad/internal/constants"
	"pinpad/internal/keymanager"
	"pinpad/internal/pinentry"
)

// Entry is what the view needs from the entry controller
type Entry interface {
	Handle(a pinentry.Action)
	Len() int
	Enabled() bool
	Title() string
}

// PinPadView is the lock screen: a masked field over a 3x4 keypad
type PinPadView struct {
	entry      Entry
	router     *pinentry.Router
	keyManager *keymanager.KeyManager
	debugPrint func(format string, args ...interface{})

	title     *widget.Label
	reason    *widget.Label
	status    *widget.Label
	field     *PasswordField
	digits    [10]*PadButton
	deleteBtn *PadButton
	okBtn     *PadButton
	busy      *BusyOverlay
	busyGuard *keymanager.BusyKeyHandler
	root      *fyne.Container
}

// NewPinPadView builds the view. SetEntry must be called before it is shown.
func NewPinPadView(router *pinentry.Router, km *keymanager.KeyManager, longPress time.Duration, debugPrint func(format string, args ...interface{})) *PinPadView {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	v := &PinPadView{
		router:     router,
		keyManager: km,
		debugPrint: debugPrint,
		title:      widget.NewLabel(""),
		reason:     widget.NewLabel(""),
		status:     widget.NewLabel(""),
		field:      NewPasswordField(km),
		busy:       NewBusyOverlay(),
		busyGuard:  keymanager.NewBusyKeyHandler(),
	}
	v.title.Alignment = fyne.TextAlignCenter
	v.title.TextStyle = fyne.TextStyle{Bold: true}
	v.reason.Alignment = fyne.TextAlignCenter
	v.reason.Wrapping = fyne.TextWrapWord
	v.status.Alignment = fyne.TextAlignCenter
	v.status.Importance = widget.DangerImportance

	touch := func(phase pinentry.TouchPhase) { v.router.Touch(phase) }

	for i := range v.digits {
		n := i
		b := NewPadButton(strconv.Itoa(n), func() { v.handle(pinentry.Digit(n)) }, touch)
		b.Importance = widget.MediumImportance
		v.digits[n] = b
	}

	v.deleteBtn = NewPadButton(lang.L("Delete"), func() { v.handle(pinentry.Delete) }, touch)
	v.SetLongPressDelay(longPress)

	v.okBtn = NewPadButton(lang.L("OK"), func() { v.handle(pinentry.Submit) }, touch)
	v.okBtn.Importance = widget.HighImportance

	grid := container.NewGridWithColumns(constants.PadColumns,
		v.digits[1], v.digits[2], v.digits[3],
		v.digits[4], v.digits[5], v.digits[6],
		v.digits[7], v.digits[8], v.digits[9],
		v.deleteBtn, v.digits[0], v.okBtn,
	)

	header := container.NewVBox(v.title, v.reason, v.field, v.status)
	main := container.NewBorder(header, nil, nil, nil, grid)
	v.root = container.NewStack(container.NewPadded(main), v.busy.GetContainer())
	return v
}

// SetEntry attaches the entry controller and syncs the view to it
func (v *PinPadView) SetEntry(entry Entry) {
	v.entry = entry
	v.title.SetText(entry.Title())
	v.Refresh()
}

// SetLongPressDelay changes how long delete must be held to clear the entry
func (v *PinPadView) SetLongPressDelay(d time.Duration) {
	if d <= 0 {
		d = constants.DefaultLongPressDelay
	}
	v.deleteBtn.SetLongPress(d, func() {
		v.debugPrint("PinPadView: long press on delete")
		v.handle(v.router.LongPressDelete())
	})
}

// Content returns the root canvas object
func (v *PinPadView) Content() fyne.CanvasObject { return v.root }

// Field returns the entry surface, which is also the focus provider
func (v *PinPadView) Field() *PasswordField { return v.field }

// DigitButton returns the button for digit n
func (v *PinPadView) DigitButton(n int) *PadButton { return v.digits[n] }

// DeleteButton returns the delete button
func (v *PinPadView) DeleteButton() *PadButton { return v.deleteBtn }

// OKButton returns the OK button
func (v *PinPadView) OKButton() *PadButton { return v.okBtn }

// Refresh mirrors the controller state; it is the controller's change
// listener. OK follows the entry enabled state.
func (v *PinPadView) Refresh() {
	if v.entry == nil {
		return
	}
	v.field.SetLength(v.entry.Len())
	enabled := v.entry.Enabled()
	v.field.SetEnabled(enabled)
	if enabled {
		v.okBtn.Enable()
	} else {
		v.okBtn.Disable()
	}
}

// SetReason shows the message for a prompt reason selector
func (v *PinPadView) SetReason(sel pinentry.Selector) {
	if sel == pinentry.SelectorNone {
		v.reason.SetText("")
		return
	}
	v.reason.SetText(lang.L(string(sel)))
}

// ReasonText returns the displayed prompt reason
func (v *PinPadView) ReasonText() string { return v.reason.Text }

// SetStatus shows a transient message under the field
func (v *PinPadView) SetStatus(msg string) {
	v.status.SetText(msg)
}

// StatusText returns the displayed status message
func (v *PinPadView) StatusText() string { return v.status.Text }

// SetBusy shows the overlay and blocks keys while a check runs
func (v *PinPadView) SetBusy(busy bool) {
	if busy {
		if v.busy.IsVisible() {
			return
		}
		v.busy.Show(lang.L("Checking PIN…"))
		v.keyManager.PushHandler(v.busyGuard)
		return
	}
	if !v.busy.IsVisible() {
		return
	}
	v.busy.Hide()
	v.keyManager.RemoveHandler(v.busyGuard)
}

// IsBusy reports whether the overlay is shown
func (v *PinPadView) IsBusy() bool { return v.busy.IsVisible() }

func (v *PinPadView) handle(a pinentry.Action) {
	if v.entry == nil {
		return
	}
	v.entry.Handle(a)

	// keep the keyboard on the entry surface after a button press
	if v.entry.Enabled() && !v.field.HasFocus() {
		v.field.RequestFocus()
	}
}
