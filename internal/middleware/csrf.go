package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
)

// CSRF protects form posts with gorilla/csrf. A nil key disables protection,
// which tests rely on. JSON requests are exempt; they cannot be sent
// cross-origin without a CORS preflight.
func CSRF(authKey []byte, secure bool) func(http.Handler) http.Handler {
	if len(authKey) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	protect := csrf.Protect(
		authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				next.ServeHTTP(w, r)
				return
			}
			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
