package theme

import (
	"image/color"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"pinpad/internal/config"
	apperrors "pinpad/internal/errors"
)

// CustomTheme implements fyne.Theme with configurable variant, fonts and
// pad digit size
type CustomTheme struct {
	config     config.ThemeConfig
	customFont fyne.Resource
}

// NewCustomTheme creates a new custom theme with the given configuration;
// a font that cannot be loaded is reported and the default font is used
func NewCustomTheme(cfg config.ThemeConfig) (*CustomTheme, error) {
	customTheme := &CustomTheme{config: cfg}

	if cfg.FontPath == "" {
		return customTheme, nil
	}
	font, err := loadFont(cfg.FontPath)
	if err != nil {
		return customTheme, err
	}
	customTheme.customFont = font
	return customTheme, nil
}

// loadFont reads a font file into a static resource
func loadFont(fontPath string) (fyne.Resource, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, apperrors.NewThemeError("load_font", "cannot read font file "+fontPath, err)
	}
	return fyne.NewStaticResource(filepath.Base(fontPath), fontData), nil
}

func (t *CustomTheme) base() fyne.Theme {
	if t.config.Dark {
		return theme.DarkTheme()
	}
	return theme.LightTheme()
}

// Color uses the configured variant
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base().Color(name, variant)
}

// Icon uses the configured variant
func (t *CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base().Icon(name)
}

// Font method with custom font support
func (t *CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	if t.customFont != nil && !style.Monospace && !style.Symbol {
		return t.customFont
	}
	return t.base().Font(style)
}

// Size applies the configured text size; pad digits use the heading size
func (t *CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		if t.config.FontSize > 0 {
			return float32(t.config.FontSize)
		}
	case theme.SizeNameHeadingText:
		if t.config.DigitSize > 0 {
			return float32(t.config.DigitSize)
		}
	}
	return t.base().Size(name)
}
