package templates

import (
	"golang.org/x/text/language"

	"github.com/brinedeck/wardroom/internal/services/shared/i18nhttp"
)

// LanguageOption is one entry in the chrome's language dropdown.
type LanguageOption = i18nhttp.LanguageOption

// LanguageOptions builds the dropdown entries for the supported tags,
// localizing each label through loc.
func LanguageOptions(supported []language.Tag, activeLang string, loc Localizer) []LanguageOption {
	return i18nhttp.BuildLanguageOptions(supported, activeLang, func(tag language.Tag) string {
		return T(loc, i18nhttp.LanguageKeyLabel(tag))
	})
}

// ActiveLanguageLabel names the selected language for the dropdown trigger.
func ActiveLanguageLabel(options []LanguageOption) string {
	return i18nhttp.ActiveLanguageLabel(options)
}
