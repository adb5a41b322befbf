package console

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/brinedeck/wardroom/internal/services/console/i18n"
)

// viewOptions opts a wrapped view out of individual middleware layers.
// The zero value is the strict default: authenticated, uncacheable,
// same-origin enforced.
type viewOptions struct {
	cacheable  bool
	csrfExempt bool
}

// wrap applies the console middleware chain to a view. requireAdmin is
// always outermost; noStore and requireSameOrigin peel off per options.
func (h *Handler) wrap(view http.Handler, opts viewOptions) http.Handler {
	wrapped := view
	if !opts.csrfExempt {
		wrapped = requireSameOrigin(wrapped)
	}
	if !opts.cacheable {
		wrapped = noStore(wrapped)
	}
	if h.introspector == nil {
		return wrapped
	}
	return requireAdmin(wrapped, h.introspector, h.loginURL)
}

// noStore marks responses as uncacheable. Management pages reflect live
// appliance state, so a cached copy is always wrong.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		header.Set("Pragma", "no-cache")
		header.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// requireSameOrigin rejects mutating cross-origin requests. Reads pass
// through untouched; non-GET/HEAD/OPTIONS methods must present an Origin or
// Referer matching the request host.
func requireSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		reject := func() {
			tag, _ := i18n.ResolveTag(r)
			http.Error(w, i18n.Printer(tag).Sprintf("error.csrf_invalid"), http.StatusForbidden)
		}

		if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
			if !sameOrigin(origin, r) {
				reject()
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		if referer := strings.TrimSpace(r.Referer()); referer != "" {
			if !sameOrigin(referer, r) {
				reject()
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		reject()
	})
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func isHTTPS(r *http.Request) bool {
	return requestScheme(r) == "https"
}
