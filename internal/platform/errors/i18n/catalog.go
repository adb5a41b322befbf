// Package i18n renders operator-facing error messages by code and locale.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/brinedeck/wardroom/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code. It mirrors the constants in
// internal/platform/errors without importing them, which would cycle.
type Code = string

// Catalog holds the message templates for one locale.
type Catalog struct {
	locale    string
	templates map[Code]string
}

// NewCatalog builds a catalog over a copy of messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	templates := make(map[Code]string, len(messages))
	for code, tmpl := range messages {
		templates[code] = tmpl
	}
	return &Catalog{locale: locale, templates: templates}
}

// Locale reports which locale this catalog renders.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the template registered for code with metadata.
// Unknown codes render as the code itself, and template failures fall
// back to the raw template text so the operator still sees something.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.templates[code]
	if !ok {
		return code
	}
	return render(tmpl, metadata)
}

func render(tmpl string, metadata map[string]string) string {
	// Execute against an empty map rather than nil so placeholder-only
	// templates still produce output.
	if metadata == nil {
		metadata = map[string]string{}
	}
	parsed, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// registry interns one catalog per locale: compiled catalogs registered
// at init plus catalogs built on demand from the locale files.
var registry = struct {
	sync.RWMutex
	byLocale map[string]*Catalog
}{byLocale: map[string]*Catalog{}}

// RegisterCatalog installs cat for locale, replacing any previous one.
func RegisterCatalog(locale string, cat *Catalog) {
	registry.Lock()
	defer registry.Unlock()
	registry.byLocale[locale] = cat
}

// GetCatalog resolves locale to a catalog. Unknown locales fall back
// through the locale files' resolution rules, landing on the base
// locale when nothing closer exists.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if cat, ok := cached(requested); ok {
		return cat
	}

	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, "errors")
	if cat, ok := cached(resolved); ok {
		return cat
	}
	return intern(resolved, NewCatalog(resolved, messages))
}

func cached(locale string) (*Catalog, bool) {
	registry.RLock()
	defer registry.RUnlock()
	cat, ok := registry.byLocale[locale]
	return cat, ok
}

// intern keeps the first catalog stored for a locale so concurrent
// builders converge on one pointer.
func intern(locale string, candidate *Catalog) *Catalog {
	registry.Lock()
	defer registry.Unlock()
	if existing, ok := registry.byLocale[locale]; ok {
		return existing
	}
	registry.byLocale[locale] = candidate
	return candidate
}
