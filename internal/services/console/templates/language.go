package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	consolei18n "github.com/brinedeck/wardroom/internal/services/console/i18n"
	sharedi18n "github.com/brinedeck/wardroom/internal/services/shared/i18nhttp"
)

// LanguageOption represents a supported language option in the console UI.
type LanguageOption = sharedi18n.LanguageOption

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext, loc Localizer) []LanguageOption {
	return sharedi18n.BuildLanguageOptions(consolei18n.Supported(), page.Lang, func(tag language.Tag) string {
		return T(loc, sharedi18n.LanguageKeyLabel(tag))
	})
}

// ActiveLanguageLabel returns the label for the active language selection.
func ActiveLanguageLabel(page PageContext, loc Localizer) string {
	return sharedi18n.ActiveLanguageLabel(LanguageOptions(page, loc))
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(page PageContext, tag string) string {
	return sharedi18n.LanguageURL(page.CurrentPath, page.CurrentQuery, tag)
}

// LanguageSwitcher renders inline links that switch the interface language
// while preserving the current path and query.
func LanguageSwitcher(page PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<nav class="mt-6 flex gap-2 text-xs" aria-label="`)
		b.WriteString(templ.EscapeString(T(page.Loc, "nav.language")))
		b.WriteString(`">`)
		for _, option := range LanguageOptions(page, page.Loc) {
			if option.Active {
				b.WriteString(`<span class="font-semibold">`)
				b.WriteString(templ.EscapeString(option.Label))
				b.WriteString(`</span>`)
				continue
			}
			b.WriteString(`<a class="link" href="`)
			b.WriteString(templ.EscapeString(LanguageURL(page, option.Tag)))
			b.WriteString(`">`)
			b.WriteString(templ.EscapeString(option.Label))
			b.WriteString(`</a>`)
		}
		b.WriteString(`</nav>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
