// Package i18nhttp builds the language-switch surface shared by web
// handlers: option lists for dropdowns and URLs that re-request the
// current page in another language.
package i18nhttp

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// LangParam is the query parameter that selects a language.
const LangParam = "lang"

// LanguageOption is one dropdown entry.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// MatchSupported resolves value to one of the supported tags. Unknown
// or malformed values fall back to the first supported tag, and an
// empty supported list falls back to English.
func MatchSupported(supported []language.Tag, value string) language.Tag {
	if parsed, err := language.Parse(strings.TrimSpace(value)); err == nil {
		for _, tag := range supported {
			if tag == parsed {
				return tag
			}
		}
	}
	if len(supported) == 0 {
		return language.English
	}
	return supported[0]
}

// BuildLanguageOptions lists supported languages with the active one
// marked. labelForTag supplies display labels; nil or blank results
// keep the raw tag.
func BuildLanguageOptions(supported []language.Tag, activeLang string, labelForTag func(tag language.Tag) string) []LanguageOption {
	active := MatchSupported(supported, activeLang)
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  labelOrTag(labelForTag, tag),
			Active: tag == active,
		})
	}
	return options
}

func labelOrTag(labelForTag func(tag language.Tag) string, tag language.Tag) string {
	if labelForTag == nil {
		return tag.String()
	}
	if label := strings.TrimSpace(labelForTag(tag)); label != "" {
		return label
	}
	return tag.String()
}

// ActiveLanguageLabel names the selected option, or the first one when
// nothing is marked active.
func ActiveLanguageLabel(options []LanguageOption) string {
	for _, option := range options {
		if option.Active {
			return option.Label
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0].Label
}

// LanguageURL rebuilds the current URL with the language param set to
// tag, preserving the rest of the query.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LanguageKeyLabel maps a tag onto the console locale label keys.
func LanguageKeyLabel(tag language.Tag) string {
	switch tag {
	case language.English:
		return "nav.lang_en"
	case language.Spanish:
		return "nav.lang_es"
	default:
		return tag.String()
	}
}
