package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/leadintake/internal/handler"
	"github.com/leadintake/internal/middleware"
	"github.com/leadintake/internal/web"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(app.logger))
	r.Use(middleware.SecurityHeaders)
	// Bound bodies before CSRF parses the form.
	r.Use(chimw.RequestSize(handler.MaxSubmissionBody))
	r.Use(middleware.CSRF(app.csrfKey, app.config.SecureCookies))
	r.Use(middleware.Guard(app.logger))

	limit := middleware.RateLimit(middleware.PerMinute(app.config.RateLimitPerMinute), 5)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS)))

	// Health check
	r.Get("/healthz", handler.Health(app.leads))

	// Login and logout
	authHandler := handler.NewAuthHandler(app.logger, app.resolver, app.templates, app.config.SecureCookies)
	r.Get("/", authHandler.LoginPage)
	r.With(limit).Post("/", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Intake form
	formHandler := handler.NewLeadFormHandler(app.logger, app.leads, app.mailQueue, app.identities, app.templates, app.config.SubmitDelay)
	r.Get("/lead-form", formHandler.Form)
	r.With(limit).Post("/lead-form", formHandler.Submit)
	r.Get(handler.ThankYouPath, formHandler.ThankYou)

	// Admin area; the guard has already checked the role.
	leadsHandler := handler.NewLeadsHandler(app.logger, app.leads, app.identities, app.templates)
	settingsHandler := handler.NewSettingsHandler(app.logger, app.identities, app.templates, handler.SettingsOptions{
		SecureCookies: app.config.SecureCookies,
		LoginDelay:    app.config.LoginDelay,
		SubmitDelay:   app.config.SubmitDelay,
	})
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", leadsHandler.Page)
		r.Get("/leads/{id}", leadsHandler.Detail)
		r.Post("/leads/{id}/toggle", leadsHandler.Toggle)
		r.Get("/settings", settingsHandler.Page)

		r.Get("/api/leads", leadsHandler.APIList)
		r.Post("/api/leads/{id}/toggle", leadsHandler.APIToggle)
	})
	return r
}
