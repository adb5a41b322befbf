// Package catalog loads the embedded locale message files and registers
// them with x/text/message so printers can translate by key.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the source locale every other locale falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var localeFS embed.FS

// localeSet holds every message for one locale, both grouped by namespace
// and flattened for duplicate detection and printer registration.
type localeSet struct {
	namespaces map[string]map[string]string
	flat       map[string]string
}

// Bundle is an immutable view over the loaded locale sets.
type Bundle struct {
	byLocale map[string]*localeSet
}

var defaultBundle = func() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}()

// Default returns the bundle built from the embedded locale files.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(localeFS)
}

// LoadFromFS loads every locales/<locale>/<namespace>.yaml file under fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files under locales/")
	}
	sort.Strings(paths)

	bundle := &Bundle{byLocale: map[string]*localeSet{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		locale, namespace, messages, err := parseLocaleFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		if err := bundle.merge(p, locale, namespace, messages); err != nil {
			return nil, err
		}
	}

	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("locale files do not define the base locale %s", BaseLocale)
	}
	return bundle, nil
}

// merge validates one parsed file against its path and folds it into the
// bundle. The locale must match the directory, the namespace must match
// the file name, keys must be unique across the whole locale, and keys
// prefixed "core." may only live in the core namespace.
func (b *Bundle) merge(filePath, locale, namespace string, messages map[string]string) error {
	wantLocale := path.Base(path.Dir(filePath))
	if locale != wantLocale {
		return fmt.Errorf("%s: declares locale %q but lives under %q", filePath, locale, wantLocale)
	}
	wantNamespace := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	if namespace != wantNamespace {
		return fmt.Errorf("%s: declares namespace %q but is named %q", filePath, namespace, wantNamespace)
	}

	set := b.byLocale[locale]
	if set == nil {
		set = &localeSet{
			namespaces: map[string]map[string]string{},
			flat:       map[string]string{},
		}
		b.byLocale[locale] = set
	}
	if _, dup := set.namespaces[namespace]; dup {
		return fmt.Errorf("%s: namespace %q appears twice for locale %q", filePath, namespace, locale)
	}

	grouped := make(map[string]string, len(messages))
	for key, value := range messages {
		if strings.HasPrefix(key, "core.") && namespace != "core" {
			return fmt.Errorf("%s: key %q belongs in the core namespace", filePath, key)
		}
		if _, dup := set.flat[key]; dup {
			return fmt.Errorf("%s: key %q already defined for locale %q", filePath, key, locale)
		}
		set.flat[key] = value
		grouped[key] = value
	}
	set.namespaces[namespace] = grouped
	return nil
}

// Register publishes every message to the global x/text/message catalog.
// Each locale is registered under its own tag and under its parent tag,
// so a viewer resolved to plain "en" still reads the en-US strings.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("locale %q is not a valid language tag: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if parent := tag.Parent(); parent != language.Und && parent != tag {
			tags = append(tags, parent)
		}

		set := b.byLocale[locale]
		keys := make([]string, 0, len(set.flat))
		for key := range set.flat {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, t := range tags {
				message.SetString(t, key, set.flat[key])
			}
		}
	}
	return nil
}

// HasLocale reports whether the bundle carries the given locale.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.byLocale[strings.TrimSpace(locale)]
	return ok
}

// Locales lists the loaded locale identifiers in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.byLocale))
	for locale := range b.byLocale {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message looks a key up in the given locale, falling back to the base
// locale when the locale or the key is absent.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil || strings.TrimSpace(key) == "" {
		return "", false
	}
	locale = strings.TrimSpace(locale)
	if set := b.byLocale[locale]; set != nil {
		if value, ok := set.flat[key]; ok {
			return value, true
		}
	}
	if locale == BaseLocale {
		return "", false
	}
	if set := b.byLocale[BaseLocale]; set != nil {
		value, ok := set.flat[key]
		return value, ok
	}
	return "", false
}

// NamespaceMessagesWithFallback returns a copy of one namespace's messages
// and the locale that satisfied the lookup, dropping to the base locale
// when the requested locale has nothing for that namespace.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	namespace = strings.TrimSpace(namespace)
	if msgs := b.namespace(locale, namespace); len(msgs) > 0 {
		return locale, msgs
	}
	return BaseLocale, b.namespace(BaseLocale, namespace)
}

func (b *Bundle) namespace(locale, namespace string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	set := b.byLocale[locale]
	if set == nil {
		return map[string]string{}
	}
	src := set.namespaces[namespace]
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

// parseLocaleFile reads the restricted locale file format: a quoted
// locale: and namespace: header followed by a messages: block of quoted
// "key": "value" lines. Blank lines and # comments are skipped.
func parseLocaleFile(data []byte) (locale, namespace string, messages map[string]string, err error) {
	messages = map[string]string{}
	inMessages := false

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "locale:"):
			locale, err = unquote(strings.TrimPrefix(line, "locale:"))
			if err != nil {
				return "", "", nil, fmt.Errorf("locale header: %w", err)
			}
		case strings.HasPrefix(line, "namespace:"):
			namespace, err = unquote(strings.TrimPrefix(line, "namespace:"))
			if err != nil {
				return "", "", nil, fmt.Errorf("namespace header: %w", err)
			}
		case line == "messages:":
			inMessages = true
		case inMessages:
			key, value, entryErr := parseEntry(line)
			if entryErr != nil {
				return "", "", nil, fmt.Errorf("entry %q: %w", line, entryErr)
			}
			messages[key] = value
		default:
			return "", "", nil, fmt.Errorf("unexpected line %q before messages:", line)
		}
	}

	switch {
	case locale == "":
		err = fmt.Errorf("missing locale header")
	case namespace == "":
		err = fmt.Errorf("missing namespace header")
	case len(messages) == 0:
		err = fmt.Errorf("no messages")
	}
	if err != nil {
		return "", "", nil, err
	}
	return locale, namespace, messages, nil
}

// parseEntry splits one `"key": "value"` line.
func parseEntry(line string) (string, string, error) {
	keyToken, rest, err := cutQuoted(line)
	if err != nil {
		return "", "", err
	}
	key, err := unquote(keyToken)
	if err != nil {
		return "", "", fmt.Errorf("key: %w", err)
	}
	if key == "" {
		return "", "", fmt.Errorf("blank key")
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' after key")
	}
	value, err := unquote(strings.TrimPrefix(rest, ":"))
	if err != nil {
		return "", "", fmt.Errorf("value: %w", err)
	}
	return key, value, nil
}

// cutQuoted returns the leading double-quoted token (quotes included,
// escapes honored) and the remainder of the line.
func cutQuoted(line string) (token, rest string, err error) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf("expected a quoted token")
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[:i+1], s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quote")
}

func unquote(token string) (string, error) {
	return strconv.Unquote(strings.TrimSpace(token))
}
