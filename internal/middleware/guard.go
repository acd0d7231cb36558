package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	LoginPath    = "/"
	LeadFormPath = "/lead-form"
	AdminPath    = "/admin"
)

// Decision is the outcome of a guard check. An empty Redirect means allow.
type Decision struct {
	Redirect string
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// IsAdminPath reports whether p is /admin or anything below it.
func IsAdminPath(p string) bool {
	return p == AdminPath || strings.HasPrefix(p, AdminPath+"/")
}

// IsGuardedPath reports whether the guard applies to p.
func IsGuardedPath(p string) bool {
	return p == LoginPath || p == LeadFormPath || IsAdminPath(p)
}

// Decide applies the access rules in order; the first match wins.
//
//  1. no presence marker, not on the login page: go to login
//  2. presence marker on the login page: go to /admin for admins, /lead-form otherwise
//  3. admin path without the admin role: go to /lead-form
//  4. allow
func Decide(path string, m Markers) Decision {
	switch {
	case !m.Present() && path != LoginPath:
		return Decision{Redirect: LoginPath}
	case m.Present() && path == LoginPath:
		if m.Role.IsAdmin() {
			return Decision{Redirect: AdminPath}
		}
		return Decision{Redirect: LeadFormPath}
	case IsAdminPath(path) && !m.Role.IsAdmin():
		return Decision{Redirect: LeadFormPath}
	default:
		return Decision{}
	}
}

// Guard runs Decide for every guarded path. Allowed requests continue with the
// markers attached to their context; the rest are redirected with 303.
func Guard(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsGuardedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			m := MarkersFromRequest(r)
			d := Decide(r.URL.Path, m)
			if !d.Allowed() {
				logger.Debug("guard: redirect", "path", r.URL.Path, "to", d.Redirect, "present", m.Present(), "role", m.Role.String())
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithMarkers(r.Context(), m)))
		})
	}
}
