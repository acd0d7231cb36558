package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/leadintake/internal/model"
)

// ErrInvalidCredentials is returned for every failed login, whether the email
// is unknown or the password is wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Resolver checks credentials against a Table.
type Resolver struct {
	table  Table
	delay  time.Duration
	logger *slog.Logger
}

func NewResolver(table Table, delay time.Duration, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{table: table, delay: delay, logger: logger}
}

// Resolve returns the identity whose email and secret both match. It waits for
// the configured delay before answering; the wait is not cut short by ctx.
func (r *Resolver) Resolve(ctx context.Context, email, password string) (model.Identity, error) {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	if email == "" || password == "" {
		r.logger.InfoContext(ctx, "auth_event", "event", "login_failed", "email", email, "reason", "empty")
		return model.Identity{}, ErrInvalidCredentials
	}

	for _, e := range r.table {
		if e.Email == email && Verify(e.Secret, password) {
			r.logger.InfoContext(ctx, "auth_event", "event", "login_succeeded", "email", email, "role", e.Role.String())
			return e.Identity, nil
		}
	}

	r.logger.InfoContext(ctx, "auth_event", "event", "login_failed", "email", email)
	return model.Identity{}, ErrInvalidCredentials
}
