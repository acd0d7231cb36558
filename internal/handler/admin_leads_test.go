package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadintake/internal/model"
	"github.com/leadintake/internal/store"
	"github.com/leadintake/internal/web"
)

func newTestLeadsHandler(t *testing.T) (*LeadsHandler, *store.LeadStore) {
	t.Helper()
	leads := store.NewLeadStore(100)
	leads.Seed(store.DemoLeads())
	return NewLeadsHandler(discardLogger(), leads, testIdentities, web.Templates), leads
}

func TestLeadsPage(t *testing.T) {
	h, _ := newTestLeadsHandler(t)

	tests := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{"all leads", "", []string{"Jorge Ruiz", "Li Zijin"}, nil},
		{"search by country", "?q=mexico", []string{"Jorge Ruiz"}, []string{"Li Zijin"}},
		{"status filter", "?status=REACHED_OUT", nil, []string{"Li Zijin"}},
		{"no match", "?q=zzzz", []string{"No leads found"}, []string{"Jorge Ruiz"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Page(rr, asAdmin(httptest.NewRequest(http.MethodGet, "/admin"+tc.query, nil)))

			require.Equal(t, http.StatusOK, rr.Code)
			body := rr.Body.String()
			for _, s := range tc.want {
				assert.Contains(t, body, s)
			}
			for _, s := range tc.notWant {
				assert.NotContains(t, body, s)
			}
			assert.Contains(t, body, "Admin User")
		})
	}
}

func TestLeadDetail_RendersMarkdown(t *testing.T) {
	h, leads := newTestLeadsHandler(t)
	created, err := leads.Create(context.Background(), model.Lead{
		FirstName:      "Ada",
		LastName:       "Byron",
		Email:          "ada@example.com",
		Country:        "United Kingdom",
		AdditionalInfo: "Needs **EB-1A** advice.\n\n<script>alert(1)</script>",
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.Detail(rr, asAdmin(withParam(httptest.NewRequest(http.MethodGet, "/admin/leads/"+created.ID, nil), "id", created.ID)))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<strong>EB-1A</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestLeadDetail_NotFound(t *testing.T) {
	h, _ := newTestLeadsHandler(t)

	rr := httptest.NewRecorder()
	h.Detail(rr, asAdmin(withParam(httptest.NewRequest(http.MethodGet, "/admin/leads/nope", nil), "id", "nope")))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeadToggle_RedirectKeepsFilters(t *testing.T) {
	h, leads := newTestLeadsHandler(t)

	form := url.Values{"q": {"li"}, "status": {"PENDING"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/leads/3/toggle", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.Toggle(rr, asAdmin(withParam(req, "id", "3")))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin?q=li&status=PENDING", rr.Header().Get("Location"))

	got, err := leads.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, model.StatusReachedOut, got.Status)
}

func TestLeadToggle_UnknownIDIsNoOp(t *testing.T) {
	h, leads := newTestLeadsHandler(t)
	before := leads.List(context.Background())

	req := httptest.NewRequest(http.MethodPost, "/admin/leads/999/toggle", nil)
	rr := httptest.NewRecorder()
	h.Toggle(rr, asAdmin(withParam(req, "id", "999")))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))
	assert.Equal(t, before, leads.List(context.Background()))
}

func TestAPIList(t *testing.T) {
	h, _ := newTestLeadsHandler(t)

	rr := httptest.NewRecorder()
	h.APIList(rr, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/api/leads?q=mexico", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp struct {
		Leads []model.Lead `json:"leads"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	ids := make([]string, 0, len(resp.Leads))
	for _, l := range resp.Leads {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"1", "2", "5"}, ids)
}

func TestAPIList_EmptyIsArray(t *testing.T) {
	h, _ := newTestLeadsHandler(t)

	rr := httptest.NewRecorder()
	h.APIList(rr, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/api/leads?q=zzzz", nil)))

	assert.JSONEq(t, `{"leads":[]}`, rr.Body.String())
}

func TestAPIToggle(t *testing.T) {
	h, _ := newTestLeadsHandler(t)

	rr := httptest.NewRecorder()
	h.APIToggle(rr, withParam(httptest.NewRequest(http.MethodPost, "/admin/api/leads/6/toggle", nil), "id", "6"))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Lead model.Lead `json:"lead"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "6", resp.Lead.ID)
	assert.Equal(t, model.StatusPending, resp.Lead.Status)
}

func TestAPIToggle_NotFound(t *testing.T) {
	h, _ := newTestLeadsHandler(t)

	rr := httptest.NewRecorder()
	h.APIToggle(rr, withParam(httptest.NewRequest(http.MethodPost, "/admin/api/leads/999/toggle", nil), "id", "999"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"the requested resource could not be found"}`, rr.Body.String())
}

func TestSettingsPage(t *testing.T) {
	h := NewSettingsHandler(discardLogger(), testIdentities, web.Templates, SettingsOptions{SecureCookies: true})

	rr := httptest.NewRecorder()
	h.Page(rr, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/settings", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "admin@tryalma.ai")
	assert.Contains(t, body, "168h0m0s")
}

func TestHealth(t *testing.T) {
	leads := store.NewLeadStore(10)
	leads.Seed(store.DemoLeads())

	rr := httptest.NewRecorder()
	Health(leads)(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","leads":8}`, rr.Body.String())
}
