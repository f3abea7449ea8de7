package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"

	"pinpad/internal/keymanager"
)

func TestUnlockedDialogRelockViaKeyboard(t *testing.T) {
	test.NewTempApp(t)
	w := test.NewTempWindow(t, widget.NewLabel("pad"))
	w.Resize(fyne.NewSize(360, 560))

	km := keymanager.NewKeyManager(dummyDebug)
	relocks, quits := 0, 0
	d := NewUnlockedDialog(km, dummyDebug)
	d.ShowDialog(w, func() { relocks++ }, func() { quits++ })

	assert.True(t, d.IsOpen())
	assert.Equal(t, []string{"UnlockedDialog"}, km.ListHandlers())

	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})

	assert.Equal(t, 1, relocks)
	assert.Equal(t, 0, quits, "hiding the dialog must not also quit")
	assert.False(t, d.IsOpen())
	assert.Equal(t, 0, km.GetStackSize())
}

func TestUnlockedDialogQuitViaEscape(t *testing.T) {
	test.NewTempApp(t)
	w := test.NewTempWindow(t, widget.NewLabel("pad"))
	w.Resize(fyne.NewSize(360, 560))

	km := keymanager.NewKeyManager(dummyDebug)
	relocks, quits := 0, 0
	d := NewUnlockedDialog(km, dummyDebug)
	d.ShowDialog(w, func() { relocks++ }, func() { quits++ })

	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})

	assert.Equal(t, 0, relocks)
	assert.Equal(t, 1, quits)
}
