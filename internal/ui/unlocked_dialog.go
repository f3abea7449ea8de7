package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"

	"pinpad/internal/keymanager"
)

// UnlockedDialog is shown after a successful check. Confirming relocks the
// pad; dismissing quits.
type UnlockedDialog struct {
	keyManager *keymanager.KeyManager
	debugPrint func(format string, args ...interface{})
	dialog     dialog.Dialog
	handler    *keymanager.UnlockedDialogKeyHandler
	onRelock   func()
	onQuit     func()
	closed     bool // Prevent double-close/pop
}

// NewUnlockedDialog creates a new unlocked dialog
func NewUnlockedDialog(keyManager *keymanager.KeyManager, debugPrint func(format string, args ...interface{})) *UnlockedDialog {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &UnlockedDialog{
		keyManager: keyManager,
		debugPrint: debugPrint,
	}
}

// ShowDialog shows the dialog over parent
func (ud *UnlockedDialog) ShowDialog(parent fyne.Window, onRelock, onQuit func()) {
	ud.onRelock = onRelock
	ud.onQuit = onQuit
	ud.closed = false

	ud.handler = keymanager.NewUnlockedDialogKeyHandler(ud, ud.debugPrint)
	ud.keyManager.PushHandler(ud.handler)

	message := widget.NewLabel(lang.L("The device is unlocked."))
	message.Alignment = fyne.TextAlignCenter

	ud.dialog = dialog.NewCustomConfirm(
		lang.L("Unlocked"),
		lang.L("Lock"),
		lang.L("Quit"),
		message,
		func(relock bool) {
			if relock {
				ud.Relock()
			} else {
				ud.Quit()
			}
		},
		parent,
	)
	ud.dialog.Show()

	// keys reach the KeyManager through the canvas handlers while unfocused
	parent.Canvas().Unfocus()
}

// IsOpen reports whether the dialog is showing
func (ud *UnlockedDialog) IsOpen() bool { return ud.dialog != nil && !ud.closed }

// Relock closes the dialog and returns to the pad
func (ud *UnlockedDialog) Relock() {
	if !ud.close() {
		return
	}
	ud.debugPrint("UnlockedDialog: relocking")
	if ud.onRelock != nil {
		ud.onRelock()
	}
}

// Quit closes the dialog and quits
func (ud *UnlockedDialog) Quit() {
	if !ud.close() {
		return
	}
	ud.debugPrint("UnlockedDialog: quitting")
	if ud.onQuit != nil {
		ud.onQuit()
	}
}

func (ud *UnlockedDialog) close() bool {
	if ud.closed {
		return false
	}
	ud.closed = true
	ud.keyManager.RemoveHandler(ud.handler)
	if ud.dialog != nil {
		ud.dialog.Hide()
	}
	return true
}
