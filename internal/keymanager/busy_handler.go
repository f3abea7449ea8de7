package keymanager

import (
	"fyne.io/fyne/v2"
)

// BusyKeyHandler swallows all key input while a PIN check is running
type BusyKeyHandler struct{}

func NewBusyKeyHandler() *BusyKeyHandler { return &BusyKeyHandler{} }

func (b *BusyKeyHandler) GetName() string { return "BusyGuard" }

func (b *BusyKeyHandler) OnKeyDown(_ *fyne.KeyEvent) bool  { return true }
func (b *BusyKeyHandler) OnKeyUp(_ *fyne.KeyEvent) bool    { return true }
func (b *BusyKeyHandler) OnTypedKey(_ *fyne.KeyEvent) bool { return true }
func (b *BusyKeyHandler) OnTypedRune(_ rune) bool          { return true }
