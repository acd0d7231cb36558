// Package lead holds the pure operations on the lead list: searching,
// status filtering, toggling and intake validation.
package lead

import (
	"iter"
	"strings"

	"github.com/leadintake/internal/model"
)

// StatusFilter selects leads by status. FilterAll matches every lead.
type StatusFilter string

const FilterAll StatusFilter = "ALL"

// ParseStatusFilter maps a query value onto a StatusFilter; unknown values
// select everything.
func ParseStatusFilter(s string) StatusFilter {
	switch model.LeadStatus(s) {
	case model.StatusPending, model.StatusReachedOut:
		return StatusFilter(s)
	default:
		return FilterAll
	}
}

// Matches reports whether status passes the filter.
func (f StatusFilter) Matches(status model.LeadStatus) bool {
	return f == FilterAll || model.LeadStatus(f) == status
}

// MatchesSearch reports whether term occurs, ignoring case, in the lead's
// full name, email or country. An empty term matches everything.
func MatchesSearch(l model.Lead, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.FullName()), term) ||
		strings.Contains(strings.ToLower(l.Email), term) ||
		strings.Contains(strings.ToLower(l.Country), term)
}

// Filter yields the leads matching both searchTerm and status, in input order.
// The sequence is lazy and can be ranged over more than once.
func Filter(leads []model.Lead, searchTerm string, status StatusFilter) iter.Seq[model.Lead] {
	return func(yield func(model.Lead) bool) {
		for _, l := range leads {
			if !status.Matches(l.Status) || !MatchesSearch(l, searchTerm) {
				continue
			}
			if !yield(l) {
				return
			}
		}
	}
}

// Toggle returns a copy of leads with the status of the lead whose ID is id
// flipped. The second result is false, and the copy unchanged, when no lead
// has that ID. leads itself is never modified.
func Toggle(leads []model.Lead, id string) ([]model.Lead, bool) {
	out := make([]model.Lead, len(leads))
	copy(out, leads)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = out[i].Status.Toggled()
			return out, true
		}
	}
	return out, false
}
