package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leadintake/internal/lead"
	"github.com/leadintake/internal/model"
)

var (
	ErrNotFound = errors.New("lead not found")
	ErrFull     = errors.New("lead store is full")
)

// LeadStore keeps leads in memory, in submission order.
type LeadStore struct {
	mu    sync.RWMutex
	leads []model.Lead
	max   int
	now   func() time.Time
}

// NewLeadStore returns a store holding at most max leads; max <= 0 means no limit.
func NewLeadStore(max int) *LeadStore {
	return &LeadStore{max: max, now: time.Now}
}

// List returns a snapshot of every lead.
func (s *LeadStore) List(_ context.Context) []model.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Get returns the lead with the given ID.
func (s *LeadStore) Get(_ context.Context, id string) (model.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Lead{}, ErrNotFound
}

// Count returns the number of stored leads.
func (s *LeadStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}

// Create appends a new lead. It assigns the ID when empty, and always sets the
// status to pending and the submission time to now.
func (s *LeadStore) Create(_ context.Context, l model.Lead) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.leads) >= s.max {
		return model.Lead{}, ErrFull
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	for _, existing := range s.leads {
		if existing.ID == l.ID {
			return model.Lead{}, fmt.Errorf("create lead %s: duplicate id", l.ID)
		}
	}
	l.Status = model.StatusPending
	l.SubmittedAt = s.now().UTC()

	s.leads = append(s.leads, l)
	slog.Debug("store: lead created", "id", l.ID)
	return l, nil
}

// Toggle flips the status of the lead with the given ID and returns it. An
// unknown ID leaves the store untouched and returns ErrNotFound.
func (s *LeadStore) Toggle(_ context.Context, id string) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := lead.Toggle(s.leads, id)
	if !ok {
		return model.Lead{}, ErrNotFound
	}
	s.leads = next
	for _, l := range next {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Lead{}, ErrNotFound
}
