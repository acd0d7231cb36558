package store

import (
	"time"

	"github.com/leadintake/internal/model"
)

// DemoLeads is the demo data the admin list starts with.
func DemoLeads() []model.Lead {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []model.Lead{
		{ID: "1", FirstName: "Jorge", LastName: "Ruiz", Email: "jorge@example.com", Country: "Mexico",
			LinkedInProfile: "https://linkedin.com/in/jorge", VisasOfInterest: []model.VisaType{model.VisaO1},
			Status: model.StatusPending, SubmittedAt: at("2024-02-02T14:45:00Z")},
		{ID: "2", FirstName: "Bahar", LastName: "Zamir", Email: "bahar@example.com", Country: "Mexico",
			LinkedInProfile: "https://linkedin.com/in/bahar", VisasOfInterest: []model.VisaType{model.VisaEB1A},
			Status: model.StatusPending, SubmittedAt: at("2024-02-02T14:45:00Z")},
		{ID: "3", FirstName: "Li", LastName: "Zijin", Email: "li@example.com", Country: "China",
			LinkedInProfile: "https://linkedin.com/in/lizijin", VisasOfInterest: []model.VisaType{model.VisaEB2NIW},
			Status: model.StatusPending, SubmittedAt: at("2024-02-02T14:45:00Z")},
		{ID: "4", FirstName: "Mark", LastName: "Antonov", Email: "mark@example.com", Country: "Russia",
			LinkedInProfile: "https://linkedin.com/in/markantonov", VisasOfInterest: []model.VisaType{model.VisaO1, model.VisaEB1A},
			Status: model.StatusPending, SubmittedAt: at("2024-02-02T14:45:00Z")},
		{ID: "5", FirstName: "Jane", LastName: "Ma", Email: "jane@example.com", Country: "Mexico",
			LinkedInProfile: "https://linkedin.com/in/janema", VisasOfInterest: []model.VisaType{model.VisaUnknown},
			Status: model.StatusPending, SubmittedAt: at("2024-02-02T14:45:00Z")},
		{ID: "6", FirstName: "Anand", LastName: "Jain", Email: "anand@example.com", Country: "India",
			LinkedInProfile: "https://linkedin.com/in/anandjain", VisasOfInterest: []model.VisaType{model.VisaEB2NIW},
			Status: model.StatusReachedOut, SubmittedAt: at("2024-02-02T14:45:00Z"),
			AdditionalInfo: "Published **12 papers** on distributed systems.\n\n- Conference speaker\n- Patent holder"},
		{ID: "7", FirstName: "Emily", LastName: "Zhang", Email: "emily@example.com", Country: "South Korea",
			LinkedInProfile: "https://linkedin.com/in/emilyzhang", VisasOfInterest: []model.VisaType{model.VisaO1},
			Status: model.StatusPending, SubmittedAt: at("2024-02-02T14:45:00Z")},
		{ID: "8", FirstName: "Jake", LastName: "Hanks", Email: "jake@example.com", Country: "Brazil",
			LinkedInProfile: "https://linkedin.com/in/jakehanks", VisasOfInterest: []model.VisaType{model.VisaEB1A, model.VisaEB2NIW},
			Status: model.StatusReachedOut, SubmittedAt: at("2024-02-02T14:45:00Z")},
	}
}

// Seed loads leads as-is, keeping their IDs, statuses and timestamps.
func (s *LeadStore) Seed(leads []model.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, leads...)
}
