package console

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/brinedeck/wardroom/internal/platform/requestctx"
	"github.com/brinedeck/wardroom/internal/services/console/routepath"
	"github.com/brinedeck/wardroom/internal/services/shared/authctx"
)

// tokenCookieName is the domain-scoped session cookie set by the web login
// service.
const tokenCookieName = "wd_token"

// AuthConfig holds auth middleware configuration for the operator plane.
type AuthConfig struct {
	IntrospectURL  string
	ResourceSecret string
	LoginURL       string
}

// TokenIntrospector validates a session token via introspection.
type TokenIntrospector = authctx.Introspector

// requireAdmin wraps next with session introspection. A request passes only
// when the session is active and carries the staff role; anything else
// redirects to the login URL. The logout path is the one exception: an
// unauthorized hit there redirects to the site index, so a stale sign-out
// never bounces an operator to the login form.
func requireAdmin(next http.Handler, introspector TokenIntrospector, loginURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAuthExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		redirect := func() {
			if r.URL.Path == routepath.AccountLogout {
				http.Redirect(w, r, routepath.Root, http.StatusFound)
				return
			}
			http.Redirect(w, r, loginURL, http.StatusFound)
		}

		cookie, err := r.Cookie(tokenCookieName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			redirect()
			return
		}

		result, err := introspector.Introspect(r.Context(), cookie.Value)
		if err != nil {
			log.Printf("console auth introspect error: %v", err)
			redirect()
			return
		}
		if !result.Active || !result.Staff {
			redirect()
			return
		}

		ctx := requestctx.WithUserID(r.Context(), result.UserID)
		ctx = requestctx.WithUsername(ctx, result.Username)
		ctx = requestctx.WithStaff(ctx, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isAuthExempt returns true for paths that bypass authentication.
func isAuthExempt(path string) bool {
	return strings.HasPrefix(path, routepath.StaticPrefix)
}

// newHTTPIntrospector creates an introspector that POSTs to the given URL.
func newHTTPIntrospector(url, resourceSecret string) TokenIntrospector {
	return authctx.NewHTTPIntrospector(url, resourceSecret, &http.Client{Timeout: 5 * time.Second})
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS(r),
	})
}
