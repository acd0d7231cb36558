package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/leadintake/internal/auth"
	appmw "github.com/leadintake/internal/middleware"
	"github.com/leadintake/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testIdentities = auth.Table{
	{Identity: model.Identity{Email: "admin@tryalma.ai", DisplayName: "Admin User", Role: model.RoleAdmin}, Secret: "admin123"},
	{Identity: model.Identity{Email: "user@tryalma.ai", DisplayName: "Regular User", Role: model.RoleUser}, Secret: "user123"},
}

// withParam attaches a chi URL parameter to the request.
func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asAdmin(r *http.Request) *http.Request {
	return r.WithContext(appmw.WithMarkers(r.Context(), appmw.Markers{Token: "tok", Role: model.RoleAdmin}))
}

type notifierSpy struct {
	mu    sync.Mutex
	leads []model.Lead
	err   error
}

func (n *notifierSpy) LeadSubmitted(l model.Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.leads = append(n.leads, l)
	return n.err
}

func (n *notifierSpy) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.leads)
}
