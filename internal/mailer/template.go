package mailer

import (
	"strings"
	"text/template"

	"github.com/leadintake/internal/model"
)

var staffNoticeTmpl = template.Must(template.New("staff").Parse(`A new case assessment request was submitted.

Name:      {{.FullName}}
Email:     {{.Email}}
Country:   {{.Country}}
LinkedIn:  {{.LinkedInProfile}}
Visas:     {{range $i, $v := .VisasOfInterest}}{{if $i}}, {{end}}{{$v}}{{end}}
{{- with .Resume}}
Resume:    {{.Filename}}{{end}}
{{- with .AdditionalInfo}}

{{.}}{{end}}
`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`Hi {{.FirstName}},

Thank you for your interest. Our team of immigration attorneys will review your
information and send a preliminary assessment of your case.

The Alma team
`))

func render(t *template.Template, l model.Lead) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, l); err != nil {
		return "", err
	}
	return sb.String(), nil
}
