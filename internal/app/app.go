package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leadintake/internal/auth"
	"github.com/leadintake/internal/config"
	"github.com/leadintake/internal/mailer"
	"github.com/leadintake/internal/store"
	"github.com/leadintake/internal/web"
)

type App struct {
	config     *config.Config
	logger     *slog.Logger
	identities auth.Table
	resolver   *auth.Resolver
	leads      *store.LeadStore
	mailQueue  *mailer.Queue
	templates  *template.Template
	csrfKey    []byte
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	app := newApp(cfg, logger)
	app.csrfKey = cfg.CSRFAuthKey()
	return app, nil
}

// newApp wires the application from an already validated config. CSRF
// protection stays off until csrfKey is set.
func newApp(cfg *config.Config, logger *slog.Logger) *App {
	identities := cfg.IdentityTable()

	leads := store.NewLeadStore(cfg.MaxLeads)
	if cfg.SeedDemoLeads {
		leads.Seed(store.DemoLeads())
		logger.Debug("seeded demo leads", "count", leads.Count(context.Background()))
	}

	mc := cfg.MailerConfig()
	if !mc.Enabled() {
		logger.Info("SMTP_HOST not set, lead notifications are logged only")
	}

	return &App{
		config:     cfg,
		logger:     logger,
		identities: identities,
		resolver:   auth.NewResolver(identities, cfg.LoginDelay, logger),
		leads:      leads,
		mailQueue:  mailer.NewQueue(mailer.New(mc, logger), cfg.MailRate, 100, 3),
		templates:  web.Templates,
	}
}

func (app *App) Start(ctx context.Context) error {
	// Create an errgroup derived from the parent context
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// The queue outlives gctx so notifications from requests still finishing
	// during shutdown are enqueued before the final drain.
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()

	g.Go(func() error {
		app.mailQueue.Start(queueCtx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done() // Wait for OS signal or listener failure

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return shutdown(shutdownCtx, srv, stopQueue)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown stops the server and only then stops the mail queue, which drains
// whatever the finished requests enqueued.
func shutdown(ctx context.Context, srv shutdowner, stopQueue context.CancelFunc) error {
	defer stopQueue()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo

	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}
