package lead

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leadintake/internal/model"
)

const (
	MaxResumeSize     = 5 << 20
	MaxAdditionalInfo = 1000
	MaxVisas          = 4
)

// Resume content types accepted by the intake form.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOC  = "application/msword"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var acceptedResumeTypes = map[string]bool{
	ContentTypePDF:  true,
	ContentTypeDOC:  true,
	ContentTypeDOCX: true,
}

var namePattern = regexp.MustCompile(`^[a-zA-Z -]+$`)

// Intake is a lead form submission before it becomes a Lead.
type Intake struct {
	FirstName       string
	LastName        string
	Email           string
	Country         string
	LinkedInProfile string
	VisasOfInterest []model.VisaType
	Resume          *model.ResumeMeta
	AdditionalInfo  string
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Validate checks every field and returns the failures, nil when valid.
func (in Intake) Validate() FieldErrors {
	errs := FieldErrors{}

	checkName(errs, "firstName", "First name", in.FirstName, 50)
	checkName(errs, "lastName", "Last name", in.LastName, 50)
	checkName(errs, "country", "Country name", in.Country, 100)

	switch n := utf8.RuneCountInString(in.Email); {
	case n < 5:
		errs["email"] = "Email is too short"
	case n > 100:
		errs["email"] = "Email cannot exceed 100 characters"
	default:
		if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
			errs["email"] = "Please enter a valid email address"
		}
	}

	if u, err := url.Parse(in.LinkedInProfile); err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs["linkedinProfile"] = "Please enter a valid LinkedIn URL"
	} else if !strings.Contains(strings.ToLower(u.Host), "linkedin.com") {
		errs["linkedinProfile"] = "Please enter a valid LinkedIn profile URL"
	}

	switch n := len(in.VisasOfInterest); {
	case n < 1:
		errs["visasOfInterest"] = "Please select at least one visa type"
	case n > MaxVisas:
		errs["visasOfInterest"] = "You cannot select more than 4 visa types"
	default:
		seen := make(map[model.VisaType]bool, n)
		for _, v := range in.VisasOfInterest {
			if !model.IsKnownVisa(v) || seen[v] {
				errs["visasOfInterest"] = "Please select valid visa types"
				break
			}
			seen[v] = true
		}
	}

	switch {
	case in.Resume == nil:
		errs["resume"] = "Please upload your resume"
	case in.Resume.Size > MaxResumeSize:
		errs["resume"] = "File size must be less than 5MB"
	case !acceptedResumeTypes[in.Resume.ContentType]:
		errs["resume"] = "Only PDF, DOC, and DOCX files are accepted"
	}

	if utf8.RuneCountInString(in.AdditionalInfo) > MaxAdditionalInfo {
		errs["additionalInfo"] = "Additional information cannot exceed 1000 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkName(errs FieldErrors, field, label, value string, max int) {
	switch n := utf8.RuneCountInString(value); {
	case n < 2:
		errs[field] = label + " must be at least 2 characters"
	case n > max:
		errs[field] = label + " cannot exceed " + strconv.Itoa(max) + " characters"
	case !namePattern.MatchString(value):
		errs[field] = label + " can only contain letters, spaces, and hyphens"
	}
}

// Lead builds the lead record for a validated intake.
func (in Intake) Lead() model.Lead {
	return model.Lead{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Country:         in.Country,
		LinkedInProfile: in.LinkedInProfile,
		VisasOfInterest: append([]model.VisaType(nil), in.VisasOfInterest...),
		Resume:          in.Resume,
		AdditionalInfo:  in.AdditionalInfo,
		Status:          model.StatusPending,
	}
}
