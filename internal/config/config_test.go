package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "pinpad/internal/errors"
)

func TestGetDefaultConfig(t *testing.T) {
	config := getDefaultConfig()

	// Test Window defaults
	if config.Window.Width != 360 {
		t.Errorf("Expected default window width 360, got %d", config.Window.Width)
	}
	if config.Window.Height != 560 {
		t.Errorf("Expected default window height 560, got %d", config.Window.Height)
	}

	// Test Theme defaults
	if !config.Theme.Dark {
		t.Error("Expected dark theme to be true by default")
	}
	if config.Theme.FontSize != 14 {
		t.Errorf("Expected default font size 14, got %d", config.Theme.FontSize)
	}
	if config.Theme.DigitSize != 24 {
		t.Errorf("Expected default digit size 24, got %d", config.Theme.DigitSize)
	}

	// Test Entry defaults
	if config.Entry.MinLength != 4 || config.Entry.MaxLength != 16 {
		t.Errorf("Expected PIN length bounds 4..16, got %d..%d", config.Entry.MinLength, config.Entry.MaxLength)
	}
	if config.LongPressDelay() != 600*time.Millisecond {
		t.Errorf("Expected long press delay 600ms, got %v", config.LongPressDelay())
	}

	// Test Lockout defaults
	if config.Lockout.MaxAttempts != 5 {
		t.Errorf("Expected default max attempts 5, got %d", config.Lockout.MaxAttempts)
	}
	if config.LockoutDuration() != 30*time.Second {
		t.Errorf("Expected default lockout 30s, got %v", config.LockoutDuration())
	}

	// Test Idle and Haptic defaults
	if config.IdleTimeout() != time.Minute {
		t.Errorf("Expected default idle timeout 1m, got %v", config.IdleTimeout())
	}
	if !config.Haptic.Enabled {
		t.Error("Expected haptic feedback to be enabled by default")
	}

	// Test Storage defaults
	if config.Storage.Backend != "keyring" {
		t.Errorf("Expected default backend 'keyring', got '%s'", config.Storage.Backend)
	}
}

func TestMergeConfigs(t *testing.T) {
	defaultConfig := getDefaultConfig()
	fileConfig := &Config{
		Window: WindowConfig{
			Width:  400,
			Height: 700,
		},
		Theme: ThemeConfig{
			Dark:     false,
			FontSize: 16,
			FontPath: "/path/to/font.ttf",
		},
		Lockout: LockoutConfig{
			MaxAttempts: 3,
		},
		Idle: IdleConfig{
			TimeoutSeconds: -1,
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
	}

	mergeConfigs(defaultConfig, fileConfig)

	// Check merged values
	if defaultConfig.Window.Width != 400 {
		t.Errorf("Expected merged window width 400, got %d", defaultConfig.Window.Width)
	}
	if defaultConfig.Theme.Dark {
		t.Error("Expected merged theme to be light (false)")
	}
	if defaultConfig.Theme.FontSize != 16 {
		t.Errorf("Expected merged font size 16, got %d", defaultConfig.Theme.FontSize)
	}
	if defaultConfig.Theme.DigitSize != 24 {
		t.Errorf("Expected unset digit size to keep default 24, got %d", defaultConfig.Theme.DigitSize)
	}
	if defaultConfig.Lockout.MaxAttempts != 3 {
		t.Errorf("Expected merged max attempts 3, got %d", defaultConfig.Lockout.MaxAttempts)
	}
	if defaultConfig.Lockout.DurationSeconds != 30 {
		t.Errorf("Expected unset lockout duration to keep default 30, got %d", defaultConfig.Lockout.DurationSeconds)
	}
	if defaultConfig.Storage.Backend != "memory" {
		t.Errorf("Expected merged backend 'memory', got '%s'", defaultConfig.Storage.Backend)
	}

	defaultConfig.Validate()
	if defaultConfig.IdleTimeout() != 0 {
		t.Errorf("Expected negative idle timeout to disable the timer, got %v", defaultConfig.IdleTimeout())
	}
}

func TestValidate(t *testing.T) {
	config := getDefaultConfig()
	config.Entry.MinLength = 0
	config.Entry.MaxLength = -3
	config.Entry.LongPressMs = 5
	config.Lockout.MaxAttempts = 0
	config.Lockout.DurationSeconds = -10
	config.Storage.Backend = "floppy"

	config.Validate()

	if config.Entry.MinLength != 4 {
		t.Errorf("Expected min length reset to 4, got %d", config.Entry.MinLength)
	}
	if config.Entry.MaxLength != 4 {
		t.Errorf("Expected max length clamped to min length, got %d", config.Entry.MaxLength)
	}
	if config.Entry.LongPressMs != 600 {
		t.Errorf("Expected long press reset to 600, got %d", config.Entry.LongPressMs)
	}
	if config.Lockout.MaxAttempts != 5 || config.Lockout.DurationSeconds != 30 {
		t.Errorf("Expected lockout policy reset, got %+v", config.Lockout)
	}
	if config.Storage.Backend != "keyring" {
		t.Errorf("Expected unknown backend reset to keyring, got '%s'", config.Storage.Backend)
	}
}

func TestManagerInterface(t *testing.T) {
	var manager ManagerInterface = NewManagerWithPath("/tmp/test_config.json", nil)
	if manager.Path() != "/tmp/test_config.json" {
		t.Errorf("Expected path to be kept, got '%s'", manager.Path())
	}
}

func TestDataPath(t *testing.T) {
	manager := NewManagerWithPath(filepath.Join("base", "pinpad", "config.json"), nil)
	want := filepath.Join("base", "pinpad", "lockout.db")
	if got := manager.DataPath("lockout.db"); got != want {
		t.Errorf("Expected data path '%s', got '%s'", want, got)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := getConfigPath()

	// Should return a non-empty path
	if path == "" {
		t.Error("Config path should not be empty")
	}

	// Should end with config.json
	if !strings.HasSuffix(path, "config.json") {
		t.Errorf("Config path should end with 'config.json', got '%s'", path)
	}
}

func TestManagerLoadNonExistentFile(t *testing.T) {
	manager := NewManagerWithPath("/non/existent/path/config.json", nil)

	config, err := manager.Load()

	// Should not return an error, but should return default config
	if err != nil {
		t.Errorf("Load should not return error for non-existent file, got: %v", err)
	}
	if config == nil {
		t.Fatal("Load should return default config for non-existent file")
	}
	if config.Window.Width != 360 {
		t.Errorf("Should return default config with width 360, got %d", config.Window.Width)
	}
}

func TestManagerLoadInvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewManagerWithPath(configPath, nil).Load()
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeConfig {
		t.Errorf("Expected config AppError, got %v", err)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.json")
	manager := NewManagerWithPath(configPath, nil)

	testConfig := getDefaultConfig()
	testConfig.Window.Width = 480
	testConfig.Theme.FontSize = 18
	testConfig.Lockout.MaxAttempts = 10
	testConfig.Haptic.Enabled = false

	if err := manager.Save(testConfig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedConfig, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loadedConfig.Window.Width != 480 {
		t.Errorf("Expected loaded width 480, got %d", loadedConfig.Window.Width)
	}
	if loadedConfig.Theme.FontSize != 18 {
		t.Errorf("Expected loaded font size 18, got %d", loadedConfig.Theme.FontSize)
	}
	if loadedConfig.Lockout.MaxAttempts != 10 {
		t.Errorf("Expected loaded max attempts 10, got %d", loadedConfig.Lockout.MaxAttempts)
	}
	if loadedConfig.Haptic.Enabled {
		t.Error("Expected loaded haptic to be disabled")
	}

	// the file is plain JSON that other tools can edit
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Saved config is not valid JSON: %v", err)
	}
	if _, ok := raw["lockout"]; !ok {
		t.Error("Saved config should contain a lockout section")
	}
}
