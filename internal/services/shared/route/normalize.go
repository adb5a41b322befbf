package route

import (
	"net/http"
	"strings"
)

// EnsureTrailingSlash canonicalizes request paths by redirecting to the same
// path with a trailing "/". The query string carries over so bookmarked grid
// URLs survive the redirect.
//
// It returns true when a redirect was written. Route handlers should stop
// further processing when true.
func EnsureTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}

	originalPath := r.URL.Path
	if originalPath == "" || strings.HasSuffix(originalPath, "/") {
		return false
	}

	canonical := originalPath + "/"
	if r.URL.RawQuery != "" {
		canonical += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, canonical, http.StatusMovedPermanently)
	return true
}
