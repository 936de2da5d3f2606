package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metwiz/leads-cli/internal/classify"
	"github.com/metwiz/leads-cli/internal/followup"
	"github.com/metwiz/leads-cli/internal/normalize"
	"github.com/metwiz/leads-cli/internal/session"
	"github.com/metwiz/leads-cli/internal/source"
)

type stubSource struct {
	table *source.Table
	err   error
}

func (s *stubSource) Load(_ context.Context) (*source.Table, error) {
	return s.table, s.err
}

func testTable() *source.Table {
	return &source.Table{
		Headers: []string{"COMPANY", "DATES", "DESCRIPTION", "QUOTATION NO.", "OUTCOME"},
		Rows: []source.Row{
			{
				"COMPANY":       "Acme Ceramics",
				"DATES":         "5/8/2025",
				"DESCRIPTION":   "hydraulic press 30 ton",
				"QUOTATION NO.": "Q-101",
				"OUTCOME":       "",
			},
			{
				"COMPANY":       "Borax Labs",
				"DATES":         "25/8/2025",
				"DESCRIPTION":   "alumina crucible set",
				"QUOTATION NO.": "Q-102",
				"OUTCOME":       "will call back next week",
			},
			{
				"COMPANY":       "Cromwell Glassworks",
				"DATES":         "1/6/2025",
				"DESCRIPTION":   "pot mill 5 litre",
				"QUOTATION NO.": "Q-103",
				"OUTCOME":       "bought",
			},
		},
	}
}

func newTestDashboard(t *testing.T, src source.Source) *dashboard {
	t.Helper()

	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	sess := session.New(src, normalize.Options{Now: now, Classifier: classify.Default()})
	require.NoError(t, sess.Refresh(context.Background()))

	return &dashboard{sess: sess, window: followup.DefaultWindow()}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestServeHealth(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t, &stubSource{table: testTable()})
	h := d.router([]string{"*"})

	rec, body := doJSON(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["leads"])
	assert.NotEmpty(t, body["session_id"])
}

func TestServeLeads(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t, &stubSource{table: testTable()})
	h := d.router([]string{"*"})

	rec, body := doJSON(t, h, http.MethodGet, "/leads", "")
	require.Equal(t, http.StatusOK, rec.Code)

	leads, ok := body["leads"].([]any)
	require.True(t, ok)
	require.Len(t, leads, 3)

	first, ok := leads[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme Ceramics", first["company"])
	assert.Equal(t, "Lead 0 - Acme Ceramics", first["label"])
	assert.Equal(t, "Hydraulic Press", first["machine_type"])
	assert.Equal(t, float64(27), first["days_since"])
}

func TestServeLeadByID(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t, &stubSource{table: testTable()})
	h := d.router([]string{"*"})

	rec, body := doJSON(t, h, http.MethodGet, "/leads/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Borax Labs", body["company"])
	assert.Equal(t, "Alumina Products", body["machine_type"])

	rec, body = doJSON(t, h, http.MethodGet, "/leads/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "lead not found", body["error"])
}

func TestServeAssessment(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t, &stubSource{table: testTable()})
	h := d.router([]string{"*"})

	// Lead 2 bought, so the verdict is terminal regardless of age.
	rec, body := doJSON(t, h, http.MethodGet, "/leads/2/assessment", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assessment, ok := body["assessment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Customer has already bought the product!", assessment["narrative"])
	assert.Equal(t, float64(95), assessment["percent"])
	assert.Equal(t, "success", assessment["severity"])
}

func TestServeFollowups(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t, &stubSource{table: testTable()})
	h := d.router([]string{"*"})

	rec, body := doJSON(t, h, http.MethodGet, "/followups", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Lead 0 has no outcome at 27 days, inside the window. Lead 1 is 7 days
	// old, too fresh. Lead 2 bought.
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, false, body["nothing_pending"])

	pending, ok := body["pending"].([]any)
	require.True(t, ok)
	require.Len(t, pending, 1)
	assert.Equal(t, "Acme Ceramics", pending[0].(map[string]any)["company"])

	// Lead 1's outcome mentions "call" and "week".
	reminders, ok := body["reminders"].([]any)
	require.True(t, ok)
	require.Len(t, reminders, 1)
}

func TestServeClusters(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t, &stubSource{table: testTable()})
	h := d.router([]string{"*"})

	rec, body := doJSON(t, h, http.MethodGet, "/clusters", "")
	require.Equal(t, http.StatusOK, rec.Code)

	clusters, ok := body["clusters"].([]any)
	require.True(t, ok)
	assert.Len(t, clusters, 3)
}

func TestServeMessage(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t, &stubSource{table: testTable()})
	h := d.router([]string{"*"})

	rec, body := doJSON(t, h, http.MethodPost, "/leads/0/message", `{"tone":"Urgent Follow-Up"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	msg, ok := body["message"].(string)
	require.True(t, ok)
	assert.Contains(t, msg, "Acme Ceramics")
	assert.Contains(t, msg, "Kindly update us.")

	rec, body = doJSON(t, h, http.MethodPost, "/leads/0/message", `{"tone":"Sarcastic"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid tone", body["error"])

	rec, _ = doJSON(t, h, http.MethodPost, "/leads/0/message", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeRefresh(t *testing.T) {
	t.Parallel()

	src := &stubSource{table: testTable()}
	d := newTestDashboard(t, src)
	h := d.router([]string{"*"})

	rec, body := doJSON(t, h, http.MethodPost, "/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["leads"])

	// An upstream failure must not disturb the served table.
	src.err = source.ErrAuthentication
	rec, body = doJSON(t, h, http.MethodPost, "/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "refresh failed", body["error"])

	rec, _ = doJSON(t, h, http.MethodGet, "/leads", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, d.sess.Leads(), 3)
}

func TestServeRefreshClearedSheet(t *testing.T) {
	t.Parallel()

	src := &stubSource{table: testTable()}
	d := newTestDashboard(t, src)
	h := d.router([]string{"*"})

	// The sheet is emptied upstream. The refresh succeeds with zero leads and
	// every page must agree, not keep serving the previous table.
	src.table = nil
	src.err = source.ErrEmptyDataset

	rec, body := doJSON(t, h, http.MethodPost, "/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["leads"])

	rec, body = doJSON(t, h, http.MethodGet, "/leads", "")
	require.Equal(t, http.StatusOK, rec.Code)
	leads, ok := body["leads"].([]any)
	require.True(t, ok, "leads must encode as a JSON array")
	assert.Empty(t, leads)

	rec, body = doJSON(t, h, http.MethodGet, "/followups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, true, body["nothing_pending"])
	pending, ok := body["pending"].([]any)
	require.True(t, ok, "pending must encode as a JSON array")
	assert.Empty(t, pending)
	reminders, ok := body["reminders"].([]any)
	require.True(t, ok, "reminders must encode as a JSON array")
	assert.Empty(t, reminders)
}
