package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pinpad/internal/constants"
	"pinpad/internal/keymanager"
)

// PasswordField is the focusable, masked entry surface. When focused it
// forwards all key events to the KeyManager; it never edits text itself.
type PasswordField struct {
	widget.BaseWidget
	km      *keymanager.KeyManager
	text    *widget.Label
	border  *canvas.Rectangle
	focused bool
	enabled bool
	length  int
}

// NewPasswordField creates a new masked field forwarding keys to km
func NewPasswordField(km *keymanager.KeyManager) *PasswordField {
	pf := &PasswordField{
		km:      km,
		text:    widget.NewLabel(""),
		border:  canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		enabled: true,
	}
	pf.text.Alignment = fyne.TextAlignCenter
	pf.text.TextStyle = fyne.TextStyle{Monospace: true}
	pf.border.CornerRadius = theme.InputRadiusSize()
	pf.ExtendBaseWidget(pf)
	return pf
}

// CreateRenderer stacks the masked text on a rounded background
func (pf *PasswordField) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(pf.border, pf.text))
}

// SetLength shows n mask characters, capped at the display width
func (pf *PasswordField) SetLength(n int) {
	pf.length = n
	shown := n
	if shown > constants.MaxMaskedShown {
		shown = constants.MaxMaskedShown
	}
	pf.text.SetText(strings.Repeat(string(constants.MaskRune), shown))
}

// Length returns the number of entered digits last shown
func (pf *PasswordField) Length() int { return pf.length }

// MaskedText returns the text currently displayed
func (pf *PasswordField) MaskedText() string { return pf.text.Text }

// SetEnabled dims the field while entry is disabled. Keys are still
// forwarded so the controller can drop them.
func (pf *PasswordField) SetEnabled(enabled bool) {
	if pf.enabled == enabled {
		return
	}
	pf.enabled = enabled
	pf.Refresh()
}

// Refresh updates the background for the focus and enabled state
func (pf *PasswordField) Refresh() {
	switch {
	case !pf.enabled:
		pf.border.FillColor = theme.Color(theme.ColorNameDisabledButton)
	case pf.focused:
		pf.border.FillColor = theme.Color(theme.ColorNameFocus)
	default:
		pf.border.FillColor = theme.Color(theme.ColorNameInputBackground)
	}
	pf.border.Refresh()
	pf.BaseWidget.Refresh()
}

// RequestFocus asks the owning canvas for focus. It reports false when the
// field is not on a canvas yet.
func (pf *PasswordField) RequestFocus() bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	c := app.Driver().CanvasForObject(pf)
	if c == nil {
		return false
	}
	c.Focus(pf)
	return pf.focused
}

// HasFocus reports whether the field holds focus
func (pf *PasswordField) HasFocus() bool { return pf.focused }

// Tapped focuses the field
func (pf *PasswordField) Tapped(_ *fyne.PointEvent) {
	pf.RequestFocus()
}

// FocusGained implements fyne.Focusable
func (pf *PasswordField) FocusGained() {
	pf.focused = true
	pf.Refresh()
}

// FocusLost implements fyne.Focusable
func (pf *PasswordField) FocusLost() {
	pf.focused = false
	pf.Refresh()
}

// TypedKey forwards typed key events to KeyManager
func (pf *PasswordField) TypedKey(ev *fyne.KeyEvent) {
	if pf.km != nil {
		pf.km.HandleTypedKey(ev)
	}
}

// TypedRune forwards typed runes to KeyManager
func (pf *PasswordField) TypedRune(r rune) {
	if pf.km != nil {
		pf.km.HandleTypedRune(r)
	}
}

// KeyDown forwards desktop key down events to KeyManager
func (pf *PasswordField) KeyDown(ev *fyne.KeyEvent) {
	if pf.km != nil {
		pf.km.HandleKeyDown(ev)
	}
}

// KeyUp forwards desktop key up events to KeyManager
func (pf *PasswordField) KeyUp(ev *fyne.KeyEvent) {
	if pf.km != nil {
		pf.km.HandleKeyUp(ev)
	}
}

// AcceptsTab keeps Tab from moving focus off the entry surface
func (pf *PasswordField) AcceptsTab() bool { return true }
