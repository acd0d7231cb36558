package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/leadintake/internal/lead"
	appmw "github.com/leadintake/internal/middleware"
	"github.com/leadintake/internal/model"
)

const (
	// MaxSubmissionBody bounds the whole multipart request.
	MaxSubmissionBody = 6 << 20

	ThankYouPath = "/thank-you"

	msgSubmitFailed = "An error occurred while submitting your application. Please try again."
)

var (
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
	zipMagic = []byte("PK\x03\x04")
)

type leadCreator interface {
	Create(ctx context.Context, l model.Lead) (model.Lead, error)
}

type leadNotifier interface {
	LeadSubmitted(l model.Lead) error
}

type leadFormValues struct {
	FirstName       string
	LastName        string
	Email           string
	Country         string
	LinkedInProfile string
	Visas           []model.VisaType
	AdditionalInfo  string
}

type leadFormPageData struct {
	layoutData
	FormID      string
	Values      leadFormValues
	Errors      lead.FieldErrors
	Message     string
	VisaOptions []model.VisaOption
}

// LeadFormHandler serves the intake form and accepts submissions.
type LeadFormHandler struct {
	BaseHandler
	leads      leadCreator
	notifier   leadNotifier
	identities identityLookup
	delay      time.Duration

	inflight singleflight.Group
	// done maps a form instance id to the id of the lead it produced.
	done sync.Map
}

func NewLeadFormHandler(logger *slog.Logger, leads leadCreator, notifier leadNotifier, identities identityLookup, tmpl *template.Template, delay time.Duration) *LeadFormHandler {
	return &LeadFormHandler{
		BaseHandler: BaseHandler{Logger: logger, templates: tmpl},
		leads:       leads,
		notifier:    notifier,
		identities:  identities,
		delay:       delay,
	}
}

// Form renders an empty intake form with a fresh form instance id.
func (h *LeadFormHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "lead_form.html", h.pageData(r, uuid.NewString(), leadFormValues{}, nil, ""))
}

// Submit validates the intake and stores it as a pending lead. Requests that
// share a form_id are coalesced so one form instance yields at most one lead.
func (h *LeadFormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxSubmissionBody)
	if err := r.ParseMultipartForm(MaxSubmissionBody); err != nil {
		http.Error(w, "Form too large or invalid", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	formID := r.PostFormValue("form_id")
	if _, err := uuid.Parse(formID); err != nil {
		formID = uuid.NewString()
	}
	key := submissionKey(r, formID)
	if id, ok := h.done.Load(key); ok {
		h.Logger.Info("lead form resubmitted", "form_id", formID, "id", id)
		http.Redirect(w, r, ThankYouPath, http.StatusSeeOther)
		return
	}

	values := leadFormValues{
		FirstName:       strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:        strings.TrimSpace(r.PostFormValue("lastName")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Country:         strings.TrimSpace(r.PostFormValue("country")),
		LinkedInProfile: strings.TrimSpace(r.PostFormValue("linkedinProfile")),
		AdditionalInfo:  strings.TrimSpace(r.PostFormValue("additionalInfo")),
	}
	for _, v := range r.PostForm["visasOfInterest"] {
		values.Visas = append(values.Visas, model.VisaType(v))
	}

	intake := lead.Intake{
		FirstName:       values.FirstName,
		LastName:        values.LastName,
		Email:           values.Email,
		Country:         values.Country,
		LinkedInProfile: values.LinkedInProfile,
		VisasOfInterest: values.Visas,
		AdditionalInfo:  values.AdditionalInfo,
	}
	resume, err := resumeFromRequest(r)
	if err != nil {
		h.logError(r, err)
	}
	intake.Resume = resume

	if errs := intake.Validate(); errs != nil {
		h.render(w, r, http.StatusUnprocessableEntity, "lead_form.html", h.pageData(r, formID, values, errs, ""))
		return
	}

	ctx := context.WithoutCancel(r.Context())
	_, err, _ = h.inflight.Do(key, func() (any, error) {
		if id, ok := h.done.Load(key); ok {
			return id, nil
		}
		if h.delay > 0 {
			time.Sleep(h.delay)
		}
		created, err := h.leads.Create(ctx, intake.Lead())
		if err != nil {
			return nil, err
		}
		h.done.Store(key, created.ID)
		h.Logger.Info("lead submitted", "id", created.ID, "country", created.Country, "visas", len(created.VisasOfInterest))
		// The lead is stored; a notification failure does not fail the submission.
		if err := h.notifier.LeadSubmitted(created); err != nil {
			h.Logger.Warn("lead notification not queued", "id", created.ID, "err", err)
		}
		return created.ID, nil
	})
	if err != nil {
		h.logError(r, err)
		h.render(w, r, http.StatusServiceUnavailable, "lead_form.html", h.pageData(r, formID, values, nil, msgSubmitFailed))
		return
	}

	http.Redirect(w, r, ThankYouPath, http.StatusSeeOther)
}

// submissionKey scopes a form instance id to the session that posted it, so a
// form_id copied into another session is not mistaken for a resubmission.
func submissionKey(r *http.Request, formID string) string {
	return appmw.MarkersFromContext(r.Context()).Token + "|" + formID
}

// ThankYou renders the confirmation page.
func (h *LeadFormHandler) ThankYou(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "thank_you.html", h.layout(r, nil, ""))
}

func (h *LeadFormHandler) pageData(r *http.Request, formID string, values leadFormValues, errs lead.FieldErrors, msg string) leadFormPageData {
	return leadFormPageData{
		layoutData:  h.layout(r, h.identities, "lead-form"),
		FormID:      formID,
		Values:      values,
		Errors:      errs,
		Message:     msg,
		VisaOptions: model.VisaOptions,
	}
}

// resumeFromRequest returns the metadata of the uploaded resume, or nil when
// no file was sent. The content type is sniffed, not taken from the client.
func resumeFromRequest(r *http.Request) (*model.ResumeMeta, error) {
	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType, err := sniffResume(file, header)
	if err != nil {
		return nil, err
	}
	return &model.ResumeMeta{
		Filename:    sanitizeFilename(header.Filename),
		ContentType: contentType,
		Size:        header.Size,
	}, nil
}

func sniffResume(file multipart.File, header *multipart.FileHeader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch {
	case http.DetectContentType(head) == lead.ContentTypePDF:
		return lead.ContentTypePDF, nil
	case ext == ".doc" && bytes.HasPrefix(head, oleMagic):
		return lead.ContentTypeDOC, nil
	case ext == ".docx" && bytes.HasPrefix(head, zipMagic):
		return lead.ContentTypeDOCX, nil
	}
	return http.DetectContentType(head), nil
}

// sanitizeFilename removes path components and dangerous characters.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "\x00", "")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "resume"
	}
	return name
}
