package ui

import (
	"embed"

	"fyne.io/fyne/v2/lang"

	apperrors "pinpad/internal/errors"
)

//go:embed translations
var translations embed.FS

// LoadTranslations registers the bundled translations, which also supply
// the text for prompt reason selectors.
func LoadTranslations() error {
	if err := lang.AddTranslationsFS(translations, "translations"); err != nil {
		return apperrors.NewUIError("load_translations", "cannot load translations", err)
	}
	return nil
}
