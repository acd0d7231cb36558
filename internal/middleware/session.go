package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/leadintake/internal/model"
)

const (
	PresenceCookieName = "auth-token"
	RoleCookieName     = "user-role"

	// MarkerTTL is how long both session markers stay valid after login.
	MarkerTTL = 7 * 24 * time.Hour
)

type contextKey string

const contextKeyMarkers contextKey = "markers"

// Markers are the two session values a browser carries: an opaque presence
// token and the role it was issued for.
type Markers struct {
	Token string
	Role  model.Role
}

// Present reports whether the presence marker is set.
func (m Markers) Present() bool {
	return m.Token != ""
}

// MarkersFromRequest reads both markers from the request cookies. A missing or
// unrecognised role cookie yields model.RoleUnknown.
func MarkersFromRequest(r *http.Request) Markers {
	var m Markers
	if c, err := r.Cookie(PresenceCookieName); err == nil {
		m.Token = c.Value
	}
	if c, err := r.Cookie(RoleCookieName); err == nil {
		m.Role = model.ParseRole(c.Value)
	}
	return m
}

// SetMarkers writes both session markers with the same expiry.
func SetMarkers(w http.ResponseWriter, m Markers, secure bool, now time.Time) {
	expires := now.Add(MarkerTTL)
	for _, kv := range [][2]string{
		{PresenceCookieName, m.Token},
		{RoleCookieName, string(m.Role)},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     kv[0],
			Value:    kv[1],
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
			Expires:  expires,
			MaxAge:   int(MarkerTTL / time.Second),
		})
	}
}

// ClearMarkers expires both session markers. Clearing absent markers is fine.
func ClearMarkers(w http.ResponseWriter, secure bool) {
	for _, name := range []string{PresenceCookieName, RoleCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
	}
}

// WithMarkers returns a copy of ctx carrying m.
func WithMarkers(ctx context.Context, m Markers) context.Context {
	return context.WithValue(ctx, contextKeyMarkers, m)
}

// MarkersFromContext returns the markers the guard attached to the request.
func MarkersFromContext(ctx context.Context) Markers {
	m, _ := ctx.Value(contextKeyMarkers).(Markers)
	return m
}
