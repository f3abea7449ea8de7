package constants

import "time"

// Application constants
const (
	ApplicationName = "pinpad"
	ApplicationID   = "io.github.pinpad"
)

// UI constants
const (
	// Window dimensions
	DefaultWindowWidth  = 360
	DefaultWindowHeight = 560

	// Pad layout
	PadColumns       = 3
	PadButtonMinSize = 64

	// Masked entry
	MaskRune       = '●'
	MaxMaskedShown = 16

	// Secondary tap on delete counts as a long press after this
	DefaultLongPressDelay = 600 * time.Millisecond
)

// Verification constants
const (
	// Bounded job history kept for diagnostics
	VerifyHistoryMax = 32

	// Lockout countdown refresh
	CountdownInterval = time.Second
)

// Config watcher constants
const (
	WatcherDebounce   = 250 * time.Millisecond
	WatcherBufferSize = 10
)

// Storage constants
const (
	ConfigFileName      = "config.json"
	LockoutDatabaseName = "lockout.db"
	KeyringServiceName  = "pinpad.credential"
	KeyringPINKey       = "pin"
)

// Haptic constants
const (
	HapticSampleRate = 44100
)
