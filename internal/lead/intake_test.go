package lead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadintake/internal/model"
)

func validIntake() Intake {
	return Intake{
		FirstName:       "Jorge",
		LastName:        "Ruiz",
		Email:           "jorge@example.com",
		Country:         "Mexico",
		LinkedInProfile: "https://linkedin.com/in/jorge",
		VisasOfInterest: []model.VisaType{model.VisaO1},
		Resume:          &model.ResumeMeta{Filename: "cv.pdf", ContentType: ContentTypePDF, Size: 1024},
		AdditionalInfo:  "Looking for options.",
	}
}

func TestIntakeValidate_Valid(t *testing.T) {
	assert.Nil(t, validIntake().Validate())
}

func TestIntakeValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Intake)
		field string
	}{
		{"first name too short", func(in *Intake) { in.FirstName = "J" }, "firstName"},
		{"first name digits", func(in *Intake) { in.FirstName = "J0rge" }, "firstName"},
		{"first name line break", func(in *Intake) { in.FirstName = "Ab\r\n\r\nInjected" }, "firstName"},
		{"last name tab", func(in *Intake) { in.LastName = "Ru\tiz" }, "lastName"},
		{"last name too long", func(in *Intake) { in.LastName = strings.Repeat("a", 51) }, "lastName"},
		{"country symbols", func(in *Intake) { in.Country = "Mexico!" }, "country"},
		{"email invalid", func(in *Intake) { in.Email = "not-an-email" }, "email"},
		{"email display name form", func(in *Intake) { in.Email = "Jorge <jorge@example.com>" }, "email"},
		{"email too short", func(in *Intake) { in.Email = "a@b" }, "email"},
		{"linkedin not a url", func(in *Intake) { in.LinkedInProfile = "linkedin.com/in/x" }, "linkedinProfile"},
		{"linkedin other host", func(in *Intake) { in.LinkedInProfile = "https://example.com/in/x" }, "linkedinProfile"},
		{"no visas", func(in *Intake) { in.VisasOfInterest = nil }, "visasOfInterest"},
		{"unknown visa", func(in *Intake) { in.VisasOfInterest = []model.VisaType{"H-1B"} }, "visasOfInterest"},
		{"duplicate visa", func(in *Intake) { in.VisasOfInterest = []model.VisaType{model.VisaO1, model.VisaO1} }, "visasOfInterest"},
		{"too many visas", func(in *Intake) {
			in.VisasOfInterest = []model.VisaType{model.VisaO1, model.VisaEB1A, model.VisaEB2NIW, model.VisaUnknown, model.VisaO1}
		}, "visasOfInterest"},
		{"missing resume", func(in *Intake) { in.Resume = nil }, "resume"},
		{"resume too big", func(in *Intake) { in.Resume.Size = MaxResumeSize + 1 }, "resume"},
		{"resume wrong type", func(in *Intake) { in.Resume.ContentType = "image/png" }, "resume"},
		{"notes too long", func(in *Intake) { in.AdditionalInfo = strings.Repeat("é", 1001) }, "additionalInfo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validIntake()
			resume := *in.Resume
			in.Resume = &resume
			tc.edit(&in)

			errs := in.Validate()
			assert.True(t, errs.Has(tc.field), "expected error on %s, got %v", tc.field, errs)
			assert.Len(t, errs, 1)
		})
	}
}

func TestIntakeValidate_BoundariesAccepted(t *testing.T) {
	in := validIntake()
	in.AdditionalInfo = strings.Repeat("é", 1000)
	in.Resume.Size = MaxResumeSize
	in.VisasOfInterest = []model.VisaType{model.VisaO1, model.VisaEB1A, model.VisaEB2NIW, model.VisaUnknown}
	in.LinkedInProfile = "https://www.linkedin.com/in/jorge"

	assert.Nil(t, in.Validate())
}

func TestIntakeLead(t *testing.T) {
	l := validIntake().Lead()

	assert.Equal(t, model.StatusPending, l.Status)
	assert.Equal(t, "Jorge Ruiz", l.FullName())
	assert.Empty(t, l.ID)
}
