package handler

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/leadintake/internal/auth"
	appmw "github.com/leadintake/internal/middleware"
	"github.com/leadintake/internal/model"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgLoginFailed        = "An error occurred. Please try again."
)

type credentialResolver interface {
	Resolve(ctx context.Context, email, password string) (model.Identity, error)
}

type loginPageData struct {
	layoutData
	Email string
	Error string
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	BaseHandler
	resolver      credentialResolver
	secureCookies bool
	now           func() time.Time
}

func NewAuthHandler(logger *slog.Logger, resolver credentialResolver, tmpl *template.Template, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   BaseHandler{Logger: logger, templates: tmpl},
		resolver:      resolver,
		secureCookies: secureCookies,
		now:           time.Now,
	}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", loginPageData{layoutData: h.layout(r, nil, "")})
}

// Login resolves the submitted credentials and, on success, sets both session
// markers and sends the browser to the area its role may use.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	id, err := h.resolver.Resolve(r.Context(), email, password)
	if err != nil {
		status, msg := http.StatusUnauthorized, msgInvalidCredentials
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logError(r, err)
			status, msg = http.StatusInternalServerError, msgLoginFailed
		}
		h.render(w, r, status, "login.html", loginPageData{
			layoutData: h.layout(r, nil, ""),
			Email:      email,
			Error:      msg,
		})
		return
	}

	appmw.SetMarkers(w, appmw.Markers{Token: auth.GenerateToken(), Role: id.Role}, h.secureCookies, h.now())

	target := appmw.LeadFormPath
	if id.Role.IsAdmin() {
		target = appmw.AdminPath
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout clears both session markers. It succeeds whether or not they exist.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	appmw.ClearMarkers(w, h.secureCookies)
	http.Redirect(w, r, appmw.LoginPath, http.StatusSeeOther)
}
