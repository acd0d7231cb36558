package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

type leadCounter interface {
	Count(ctx context.Context) int
}

// Health returns a health check handler reporting the number of stored leads.
func Health(leads leadCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "leads": leads.Count(r.Context())})
	}
}
