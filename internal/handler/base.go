package handler

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	appmw "github.com/leadintake/internal/middleware"
	"github.com/leadintake/internal/model"
)

type envelope map[string]any

// identityLookup resolves the display identity for a session role.
type identityLookup interface {
	ForRole(role model.Role) (model.Identity, bool)
}

// layoutData is embedded in every page's template data.
type layoutData struct {
	CSRFField template.HTML
	Identity  *model.Identity
	Active    string
}

type BaseHandler struct {
	Logger    *slog.Logger
	templates *template.Template
}

func (h *BaseHandler) layout(r *http.Request, identities identityLookup, active string) layoutData {
	data := layoutData{CSRFField: csrf.TemplateField(r), Active: active}
	if identities == nil {
		return data
	}
	m := appmw.MarkersFromContext(r.Context())
	if !m.Present() {
		return data
	}
	if id, ok := identities.ForRole(m.Role); ok {
		data.Identity = &id
	}
	return data
}

// render executes the named template into a buffer first so a template error
// never leaves a half-written page behind.
func (h *BaseHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logError(r, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *BaseHandler) logError(r *http.Request, err error) {
	method := r.Method
	uri := r.URL.RequestURI()

	h.Logger.Error(err.Error(), "method", method, "uri", uri)
}

func (h *BaseHandler) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"error": message}

	err := h.writeJSON(w, status, env, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(500)
	}
}

func (h *BaseHandler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	h.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (h *BaseHandler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *BaseHandler) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for k, v := range headers {
		for _, value := range v {
			w.Header().Add(k, value)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(js, '\n'))
	return err
}
