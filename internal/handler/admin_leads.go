package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/leadintake/internal/lead"
	appmw "github.com/leadintake/internal/middleware"
	"github.com/leadintake/internal/model"
	"github.com/leadintake/internal/store"
)

type leadRepository interface {
	List(ctx context.Context) []model.Lead
	Get(ctx context.Context, id string) (model.Lead, error)
	Toggle(ctx context.Context, id string) (model.Lead, error)
}

type statusOption struct {
	Value lead.StatusFilter
	Label string
}

var statusOptions = []statusOption{
	{Value: lead.FilterAll, Label: "All statuses"},
	{Value: lead.StatusFilter(model.StatusPending), Label: model.StatusPending.Label()},
	{Value: lead.StatusFilter(model.StatusReachedOut), Label: model.StatusReachedOut.Label()},
}

type adminLeadsPageData struct {
	layoutData
	Leads         []model.Lead
	Total         int
	Query         string
	Status        lead.StatusFilter
	StatusOptions []statusOption
}

type adminLeadPageData struct {
	layoutData
	Lead  model.Lead
	Notes template.HTML
}

// LeadsHandler serves the admin lead list, detail view and status toggles.
type LeadsHandler struct {
	BaseHandler
	leads      leadRepository
	identities identityLookup
	markdown   goldmark.Markdown
}

func NewLeadsHandler(logger *slog.Logger, leads leadRepository, identities identityLookup, tmpl *template.Template) *LeadsHandler {
	return &LeadsHandler{
		BaseHandler: BaseHandler{Logger: logger, templates: tmpl},
		leads:       leads,
		identities:  identities,
		markdown:    goldmark.New(),
	}
}

// Page renders the lead list filtered by ?q= and ?status=.
func (h *LeadsHandler) Page(w http.ResponseWriter, r *http.Request) {
	q, status := listParams(r.URL.Query())
	all := h.leads.List(r.Context())

	h.render(w, r, http.StatusOK, "admin_leads.html", adminLeadsPageData{
		layoutData:    h.layout(r, h.identities, "leads"),
		Leads:         slices.Collect(lead.Filter(all, q, status)),
		Total:         len(all),
		Query:         q,
		Status:        status,
		StatusOptions: statusOptions,
	})
}

// Detail renders one lead with its notes converted from markdown.
func (h *LeadsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	l, err := h.leads.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logError(r, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var notes bytes.Buffer
	if err := h.markdown.Convert([]byte(l.AdditionalInfo), &notes); err != nil {
		h.logError(r, err)
		notes.Reset()
	}

	h.render(w, r, http.StatusOK, "admin_lead.html", adminLeadPageData{
		layoutData: h.layout(r, h.identities, "leads"),
		Lead:       l,
		// goldmark escapes raw HTML unless WithUnsafe is set.
		Notes: template.HTML(notes.String()),
	})
}

// Toggle flips a lead's status and returns to the list with the same filters.
// An unknown id changes nothing.
func (h *LeadsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	switch _, err := h.leads.Toggle(r.Context(), id); {
	case err == nil:
		h.Logger.Info("lead status toggled", "id", id)
	case errors.Is(err, store.ErrNotFound):
		h.Logger.Debug("toggle: no such lead", "id", id)
	default:
		h.logError(r, err)
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, appmw.AdminPath, http.StatusSeeOther)
		return
	}
	q, status := listParams(r.PostForm)
	http.Redirect(w, r, listURL(q, status), http.StatusSeeOther)
}

// APIList returns the filtered leads as JSON.
func (h *LeadsHandler) APIList(w http.ResponseWriter, r *http.Request) {
	q, status := listParams(r.URL.Query())
	leads := slices.Collect(lead.Filter(h.leads.List(r.Context()), q, status))
	if leads == nil {
		leads = []model.Lead{}
	}
	if err := h.writeJSON(w, http.StatusOK, envelope{"leads": leads}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// APIToggle flips a lead's status and returns the updated lead as JSON.
func (h *LeadsHandler) APIToggle(w http.ResponseWriter, r *http.Request) {
	l, err := h.leads.Toggle(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		h.notFoundResponse(w, r)
		return
	}
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	if err := h.writeJSON(w, http.StatusOK, envelope{"lead": l}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func listParams(v url.Values) (string, lead.StatusFilter) {
	return v.Get("q"), lead.ParseStatusFilter(v.Get("status"))
}

func listURL(q string, status lead.StatusFilter) string {
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	if status != lead.FilterAll {
		v.Set("status", string(status))
	}
	if len(v) == 0 {
		return appmw.AdminPath
	}
	return appmw.AdminPath + "?" + v.Encode()
}
