package i18nhttp

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatchSupported(t *testing.T) {
	t.Parallel()

	supported := []language.Tag{language.English, language.Spanish}

	tests := []struct {
		name  string
		value string
		want  language.Tag
	}{
		{name: "supported tag", value: "es", want: language.Spanish},
		{name: "unsupported tag", value: "fr", want: language.English},
		{name: "malformed tag", value: "not a tag", want: language.English},
		{name: "padded tag", value: " es ", want: language.Spanish},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := MatchSupported(supported, tc.value); got != tc.want {
				t.Fatalf("MatchSupported(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestMatchSupportedEmptyListFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	if got := MatchSupported(nil, "es"); got != language.English {
		t.Fatalf("MatchSupported(nil) = %v, want English", got)
	}
}

func TestBuildLanguageOptionsMarksActive(t *testing.T) {
	t.Parallel()

	options := BuildLanguageOptions(
		[]language.Tag{language.English, language.Spanish},
		"es",
		func(tag language.Tag) string { return tag.String() + "-label" },
	)
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if options[0].Active || !options[1].Active {
		t.Fatalf("active flags = %v/%v, want only the second", options[0].Active, options[1].Active)
	}
	if options[0].Label != "en-label" || options[1].Label != "es-label" {
		t.Fatalf("labels = %q/%q", options[0].Label, options[1].Label)
	}
}

func TestBuildLanguageOptionsKeepsTagWhenLabelBlank(t *testing.T) {
	t.Parallel()

	options := BuildLanguageOptions(
		[]language.Tag{language.English},
		"en",
		func(language.Tag) string { return "   " },
	)
	if options[0].Label != "en" {
		t.Fatalf("Label = %q, want raw tag en", options[0].Label)
	}

	options = BuildLanguageOptions([]language.Tag{language.Spanish}, "es", nil)
	if options[0].Label != "es" {
		t.Fatalf("Label with nil func = %q, want es", options[0].Label)
	}
}

func TestActiveLanguageLabel(t *testing.T) {
	t.Parallel()

	options := []LanguageOption{
		{Tag: "en", Label: "English"},
		{Tag: "es", Label: "Español", Active: true},
	}
	if got := ActiveLanguageLabel(options); got != "Español" {
		t.Fatalf("ActiveLanguageLabel = %q, want Español", got)
	}
	if got := ActiveLanguageLabel(options[:1]); got != "English" {
		t.Fatalf("no active option = %q, want first label", got)
	}
	if got := ActiveLanguageLabel(nil); got != "" {
		t.Fatalf("empty options = %q, want empty", got)
	}
}

func TestLanguageURLPreservesQuery(t *testing.T) {
	t.Parallel()

	got := LanguageURL("/system/settings/", "page_size=5", "es")
	if got != "/system/settings/?lang=es&page_size=5" && got != "/system/settings/?page_size=5&lang=es" {
		t.Fatalf("LanguageURL = %q", got)
	}

	if got := LanguageURL("", "", "en"); got != "/?lang=en" {
		t.Fatalf("LanguageURL(blank path) = %q, want /?lang=en", got)
	}
}

func TestLanguageURLReplacesExistingLangParam(t *testing.T) {
	t.Parallel()

	got := LanguageURL("/help/", "lang=en", "es")
	if got != "/help/?lang=es" {
		t.Fatalf("LanguageURL = %q, want /help/?lang=es", got)
	}
}

func TestLanguageKeyLabel(t *testing.T) {
	t.Parallel()

	if got := LanguageKeyLabel(language.English); got != "nav.lang_en" {
		t.Fatalf("LanguageKeyLabel(en) = %q", got)
	}
	if got := LanguageKeyLabel(language.Spanish); got != "nav.lang_es" {
		t.Fatalf("LanguageKeyLabel(es) = %q", got)
	}
	if got := LanguageKeyLabel(language.French); got != "fr" {
		t.Fatalf("LanguageKeyLabel(fr) = %q, want the raw tag", got)
	}
}
