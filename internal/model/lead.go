package model

import "time"

type LeadStatus string

const (
	StatusPending    LeadStatus = "PENDING"
	StatusReachedOut LeadStatus = "REACHED_OUT"
)

// Toggled returns the other status.
func (s LeadStatus) Toggled() LeadStatus {
	if s == StatusPending {
		return StatusReachedOut
	}
	return StatusPending
}

// Label is the human readable status shown in the admin list.
func (s LeadStatus) Label() string {
	if s == StatusReachedOut {
		return "Reached Out"
	}
	return "Pending"
}

type VisaType string

const (
	VisaO1      VisaType = "O-1"
	VisaEB1A    VisaType = "EB-1A"
	VisaEB2NIW  VisaType = "EB-2 NIW"
	VisaUnknown VisaType = "I don't know"
)

// VisaOption pairs a visa type with its form label.
type VisaOption struct {
	Label string
	Value VisaType
}

// VisaOptions lists the visa checkboxes in display order.
var VisaOptions = []VisaOption{
	{Label: "O-1 Visa", Value: VisaO1},
	{Label: "EB-1A Visa", Value: VisaEB1A},
	{Label: "EB-2 NIW", Value: VisaEB2NIW},
	{Label: "I don't know", Value: VisaUnknown},
}

// IsKnownVisa reports whether v is one of VisaOptions.
func IsKnownVisa(v VisaType) bool {
	for _, o := range VisaOptions {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ResumeMeta describes an uploaded resume. The file contents are not kept.
type ResumeMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Lead is a submitted case-assessment request.
type Lead struct {
	ID              string      `json:"id"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Email           string      `json:"email"`
	Country         string      `json:"country"`
	LinkedInProfile string      `json:"linkedinProfile"`
	VisasOfInterest []VisaType  `json:"visasOfInterest"`
	Resume          *ResumeMeta `json:"resume,omitempty"`
	AdditionalInfo  string      `json:"additionalInfo,omitempty"`
	Status          LeadStatus  `json:"status"`
	SubmittedAt     time.Time   `json:"submittedAt"`
}

// FullName returns "first last".
func (l Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}
