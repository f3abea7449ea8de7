package keymanager

import (
	"fyne.io/fyne/v2"

	"pinpad/internal/pinentry"
)

// Fyne reports keypad digits under the same names as the main row, so the
// keypad is told apart by its XKB hardware keycode (evdev + 8)
var keypadScanCodes = map[int]int{
	90: 0, // KP_0
	87: 1, // KP_1
	88: 2, // KP_2
	89: 3, // KP_3
	83: 4, // KP_4
	84: 5, // KP_5
	85: 6, // KP_6
	79: 7, // KP_7
	80: 8, // KP_8
	81: 9, // KP_9
}

var digitNames = map[fyne.KeyName]int{
	fyne.Key0: 0,
	fyne.Key1: 1,
	fyne.Key2: 2,
	fyne.Key3: 3,
	fyne.Key4: 4,
	fyne.Key5: 5,
	fyne.Key6: 6,
	fyne.Key7: 7,
	fyne.Key8: 8,
	fyne.Key9: 9,
}

// TranslateKey maps a toolkit key event to the entry key codes
func TranslateKey(ev *fyne.KeyEvent) pinentry.KeyCode {
	if ev == nil {
		return pinentry.KeyUnknown
	}

	switch ev.Name {
	case fyne.KeyReturn:
		return pinentry.KeyEnter
	case fyne.KeyEnter:
		return pinentry.KeyNumpadEnter
	case fyne.KeySpace:
		return pinentry.KeySpace
	case fyne.KeyBackspace:
		return pinentry.KeyDelete
	case fyne.KeyEscape:
		return pinentry.KeyEscape
	}

	if n, ok := digitNames[ev.Name]; ok {
		if _, keypad := keypadScanCodes[ev.Physical.ScanCode]; keypad {
			return pinentry.NumpadKey(n)
		}
		return pinentry.DigitKey(n)
	}
	return pinentry.KeyUnknown
}
