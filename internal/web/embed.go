package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"github.com/leadintake/internal/model"
)

//go:embed static
var staticFiles embed.FS

//go:embed templates
var templateFiles embed.FS

// StaticFS is the embedded static file system with the "static/" prefix stripped.
var StaticFS fs.FS

// Templates is the compiled template set for all views.
var Templates *template.Template

// FormField is the view of one text input on a form.
type FormField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("1/2/2006")
	},
	"hasVisa": func(selected []model.VisaType, v model.VisaType) bool {
		return slices.Contains(selected, v)
	},
	"field": func(name, label, typ, value string, errs map[string]string) FormField {
		return FormField{Name: name, Label: label, Type: typ, Value: value, Error: errs[name]}
	},
	"kb": func(size int64) int64 {
		return (size + 1023) / 1024
	},
}

func init() {
	var err error

	StaticFS, err = fs.Sub(staticFiles, "static")
	if err != nil {
		slog.Error("web: failed to create static FS", "err", err)
		panic(err)
	}

	Templates, err = template.New("").Funcs(Funcs).ParseFS(templateFiles,
		"templates/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		slog.Error("web: failed to parse templates", "err", err)
		panic(err)
	}
}
