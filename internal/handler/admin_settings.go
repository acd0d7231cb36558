package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	appmw "github.com/leadintake/internal/middleware"
)

type adminSettingsPageData struct {
	layoutData
	SessionTTL    time.Duration
	SecureCookies bool
	LoginDelay    time.Duration
	SubmitDelay   time.Duration
}

// SettingsOptions is the runtime configuration shown on the settings page.
type SettingsOptions struct {
	SecureCookies bool
	LoginDelay    time.Duration
	SubmitDelay   time.Duration
}

// SettingsHandler renders the signed-in identity and session settings.
type SettingsHandler struct {
	BaseHandler
	identities identityLookup
	opts       SettingsOptions
}

func NewSettingsHandler(logger *slog.Logger, identities identityLookup, tmpl *template.Template, opts SettingsOptions) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: BaseHandler{Logger: logger, templates: tmpl},
		identities:  identities,
		opts:        opts,
	}
}

// Page renders the admin settings page.
func (h *SettingsHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin_settings.html", adminSettingsPageData{
		layoutData:    h.layout(r, h.identities, "settings"),
		SessionTTL:    appmw.MarkerTTL,
		SecureCookies: h.opts.SecureCookies,
		LoginDelay:    h.opts.LoginDelay,
		SubmitDelay:   h.opts.SubmitDelay,
	})
}
