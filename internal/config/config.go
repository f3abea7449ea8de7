package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"pinpad/internal/constants"
	apperrors "pinpad/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Window  WindowConfig  `json:"window"`
	Theme   ThemeConfig   `json:"theme"`
	Entry   EntryConfig   `json:"entry"`
	Lockout LockoutConfig `json:"lockout"`
	Idle    IdleConfig    `json:"idle"`
	Haptic  HapticConfig  `json:"haptic"`
	Storage StorageConfig `json:"storage"`
}

// WindowConfig represents window-related settings
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ThemeConfig represents theme-related settings
type ThemeConfig struct {
	Dark      bool   `json:"dark"`
	FontSize  int    `json:"fontSize"`
	FontPath  string `json:"fontPath"`
	DigitSize int    `json:"digitSize"` // Text size of the pad buttons
}

// EntryConfig represents PIN entry settings
type EntryConfig struct {
	MinLength   int `json:"minLength"`   // Shortest PIN accepted by set-pin
	MaxLength   int `json:"maxLength"`   // Longest PIN accepted by set-pin
	LongPressMs int `json:"longPressMs"` // Hold time before delete clears everything
}

// LockoutConfig represents failed attempt policy
type LockoutConfig struct {
	MaxAttempts     int `json:"maxAttempts"`     // Failures before each lockout
	DurationSeconds int `json:"durationSeconds"` // Length of one lockout
}

// IdleConfig represents inactivity handling
type IdleConfig struct {
	TimeoutSeconds int `json:"timeoutSeconds"` // Negative disables the idle timer
}

// HapticConfig represents key click feedback settings
type HapticConfig struct {
	Enabled     bool    `json:"enabled"`
	FrequencyHz float64 `json:"frequencyHz"`
	DurationMs  int     `json:"durationMs"`
	Volume      float64 `json:"volume"` // Relative gain, 0 is unchanged, negative is quieter
}

// StorageConfig represents where credentials and lockout state live
type StorageConfig struct {
	Backend      string `json:"backend"`      // "keyring", "memory"
	DatabasePath string `json:"databasePath"` // Lockout database, empty for the default
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
	debugPrint func(format string, args ...interface{})
}

// NewManager creates a new configuration manager for the default location
func NewManager(debugPrint func(format string, args ...interface{})) *Manager {
	return NewManagerWithPath(getConfigPath(), debugPrint)
}

// NewManagerWithPath creates a configuration manager for an explicit file
func NewManagerWithPath(path string, debugPrint func(format string, args ...interface{})) *Manager {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &Manager{
		configPath: path,
		debugPrint: debugPrint,
	}
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.configPath
}

// DataPath returns a file path next to the configuration file
func (m *Manager) DataPath(name string) string {
	return filepath.Join(filepath.Dir(m.configPath), name)
}

// Load loads configuration from file and merges with defaults
func (m *Manager) Load() (*Config, error) {
	// Start with default configuration
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		m.debugPrint("Config file not found, using defaults: %v", err)
		return config, nil
	}

	// Parse config file into a temporary config
	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, apperrors.NewConfigError("load_config", "error parsing config file", err)
	}

	// Merge file config with defaults
	mergeConfigs(config, &fileConfig)
	config.Validate()
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	// Create the config directory if it doesn't exist
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return apperrors.NewConfigError("save_config", "error creating config directory", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return apperrors.NewConfigError("save_config", "error marshaling config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return apperrors.NewConfigError("save_config", "error writing config file", err)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  constants.DefaultWindowWidth,
			Height: constants.DefaultWindowHeight,
		},
		Theme: ThemeConfig{
			Dark:      true,
			FontSize:  14,
			FontPath:  "",
			DigitSize: 24,
		},
		Entry: EntryConfig{
			MinLength:   4,
			MaxLength:   16,
			LongPressMs: 600,
		},
		Lockout: LockoutConfig{
			MaxAttempts:     5,
			DurationSeconds: 30,
		},
		Idle: IdleConfig{
			TimeoutSeconds: 60,
		},
		Haptic: HapticConfig{
			Enabled:     true,
			FrequencyHz: 1800,
			DurationMs:  12,
			Volume:      -2,
		},
		Storage: StorageConfig{
			Backend:      "keyring",
			DatabasePath: "",
		},
	}
}

// getConfigPath returns the path to the configuration file following OS conventions
func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\pinpad\config.json
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, constants.ApplicationName)

	case "darwin":
		// macOS: ~/Library/Application Support/pinpad/config.json
		home, err := os.UserHomeDir()
		if err != nil {
			return constants.ConfigFileName
		}
		configDir = filepath.Join(home, "Library", "Application Support", constants.ApplicationName)

	default:
		// Linux/Unix: $XDG_CONFIG_HOME/pinpad/config.json or ~/.config/pinpad/config.json
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, constants.ApplicationName)
	}

	return filepath.Join(configDir, constants.ConfigFileName)
}

// mergeConfigs merges file config values into default config
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	// Merge Window config
	if fileConfig.Window.Width != 0 {
		defaultConfig.Window.Width = fileConfig.Window.Width
	}
	if fileConfig.Window.Height != 0 {
		defaultConfig.Window.Height = fileConfig.Window.Height
	}

	// Merge Theme config
	// Note: for bool values, we can't distinguish between false and unset, so we always use file value
	defaultConfig.Theme.Dark = fileConfig.Theme.Dark
	if fileConfig.Theme.FontSize != 0 {
		defaultConfig.Theme.FontSize = fileConfig.Theme.FontSize
	}
	if fileConfig.Theme.FontPath != "" {
		defaultConfig.Theme.FontPath = fileConfig.Theme.FontPath
	}
	if fileConfig.Theme.DigitSize != 0 {
		defaultConfig.Theme.DigitSize = fileConfig.Theme.DigitSize
	}

	// Merge Entry config
	if fileConfig.Entry.MinLength != 0 {
		defaultConfig.Entry.MinLength = fileConfig.Entry.MinLength
	}
	if fileConfig.Entry.MaxLength != 0 {
		defaultConfig.Entry.MaxLength = fileConfig.Entry.MaxLength
	}
	if fileConfig.Entry.LongPressMs != 0 {
		defaultConfig.Entry.LongPressMs = fileConfig.Entry.LongPressMs
	}

	// Merge Lockout config
	if fileConfig.Lockout.MaxAttempts != 0 {
		defaultConfig.Lockout.MaxAttempts = fileConfig.Lockout.MaxAttempts
	}
	if fileConfig.Lockout.DurationSeconds != 0 {
		defaultConfig.Lockout.DurationSeconds = fileConfig.Lockout.DurationSeconds
	}

	// Merge Idle config
	if fileConfig.Idle.TimeoutSeconds != 0 {
		defaultConfig.Idle.TimeoutSeconds = fileConfig.Idle.TimeoutSeconds
	}

	// Merge Haptic config
	defaultConfig.Haptic.Enabled = fileConfig.Haptic.Enabled
	if fileConfig.Haptic.FrequencyHz != 0 {
		defaultConfig.Haptic.FrequencyHz = fileConfig.Haptic.FrequencyHz
	}
	if fileConfig.Haptic.DurationMs != 0 {
		defaultConfig.Haptic.DurationMs = fileConfig.Haptic.DurationMs
	}
	if fileConfig.Haptic.Volume != 0 {
		defaultConfig.Haptic.Volume = fileConfig.Haptic.Volume
	}

	// Merge Storage config
	if fileConfig.Storage.Backend != "" {
		defaultConfig.Storage.Backend = fileConfig.Storage.Backend
	}
	if fileConfig.Storage.DatabasePath != "" {
		defaultConfig.Storage.DatabasePath = fileConfig.Storage.DatabasePath
	}
}

// Validate clamps values that cannot work back to their defaults
func (c *Config) Validate() {
	defaults := getDefaultConfig()

	if c.Entry.MinLength < 1 {
		c.Entry.MinLength = defaults.Entry.MinLength
	}
	if c.Entry.MaxLength < c.Entry.MinLength {
		c.Entry.MaxLength = c.Entry.MinLength
	}
	if c.Entry.LongPressMs < 100 {
		c.Entry.LongPressMs = defaults.Entry.LongPressMs
	}
	if c.Lockout.MaxAttempts < 1 {
		c.Lockout.MaxAttempts = defaults.Lockout.MaxAttempts
	}
	if c.Lockout.DurationSeconds < 1 {
		c.Lockout.DurationSeconds = defaults.Lockout.DurationSeconds
	}
	if c.Idle.TimeoutSeconds < 0 {
		c.Idle.TimeoutSeconds = 0
	}
	switch c.Storage.Backend {
	case "keyring", "memory":
	default:
		c.Storage.Backend = defaults.Storage.Backend
	}
}

// LongPressDelay returns the hold time for the long-press delete gesture
func (c *Config) LongPressDelay() time.Duration {
	return time.Duration(c.Entry.LongPressMs) * time.Millisecond
}

// LockoutDuration returns the length of one lockout
func (c *Config) LockoutDuration() time.Duration {
	return time.Duration(c.Lockout.DurationSeconds) * time.Second
}

// IdleTimeout returns the inactivity timeout, zero when disabled
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Idle.TimeoutSeconds) * time.Second
}

// HapticDuration returns the click length
func (c *Config) HapticDuration() time.Duration {
	return time.Duration(c.Haptic.DurationMs) * time.Millisecond
}
