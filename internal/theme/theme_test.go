package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"pinpad/internal/config"
	apperrors "pinpad/internal/errors"
)

func TestSizes(t *testing.T) {
	th, err := NewCustomTheme(config.ThemeConfig{Dark: true, FontSize: 15, DigitSize: 30})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := th.Size(theme.SizeNameText); got != 15 {
		t.Errorf("Expected text size 15, got %v", got)
	}
	if got := th.Size(theme.SizeNameHeadingText); got != 30 {
		t.Errorf("Expected digit size 30, got %v", got)
	}
	if got, want := th.Size(theme.SizeNamePadding), theme.DarkTheme().Size(theme.SizeNamePadding); got != want {
		t.Errorf("Expected default padding %v, got %v", want, got)
	}
}

func TestZeroSizesFallBack(t *testing.T) {
	th, _ := NewCustomTheme(config.ThemeConfig{})
	if got, want := th.Size(theme.SizeNameText), theme.LightTheme().Size(theme.SizeNameText); got != want {
		t.Errorf("Expected default text size %v, got %v", want, got)
	}
}

func TestMissingFont(t *testing.T) {
	th, err := NewCustomTheme(config.ThemeConfig{FontPath: "/non/existent/font.ttf"})
	if th == nil {
		t.Fatal("Theme should be usable without its font")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeTheme {
		t.Errorf("Expected theme AppError, got %v", err)
	}
	if th.Font(fyne.TextStyle{}) == nil {
		t.Error("Expected default font")
	}
}

func TestCustomFontLoaded(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "digits.ttf")
	if err := os.WriteFile(fontPath, []byte("not really a font"), 0644); err != nil {
		t.Fatal(err)
	}

	th, err := NewCustomTheme(config.ThemeConfig{FontPath: fontPath})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res := th.Font(fyne.TextStyle{}); res == nil || res.Name() != "digits.ttf" {
		t.Errorf("Expected custom font resource, got %v", res)
	}
	if res := th.Font(fyne.TextStyle{Monospace: true}); res.Name() == "digits.ttf" {
		t.Error("Monospace text should keep the default font")
	}
}
