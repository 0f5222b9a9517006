package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/freight/services"
	"carreto-freight-api/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	manager := session.NewManager(session.Factory{
		TickInterval: time.Hour,
		Logger:       logger,
	}, time.Hour, logger)
	return manager.Create("Motorista Demo", session.RoleDriver)
}

func newHandler() *JobHandler {
	return NewJobHandler(services.NewLifecycleService(), nil, nil, slog.New(slog.DiscardHandler))
}

func doRequest(t *testing.T, s *session.Session, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(session.NewContext(req.Context(), s))

	mux := http.NewServeMux()
	mux.HandleFunc(method+" "+routePattern(target), handler)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// routePattern maps a concrete test URL onto the registered pattern.
func routePattern(target string) string {
	switch {
	case strings.HasSuffix(target, "/photo"):
		return "/api/v1/jobs/{id}/photo"
	case strings.HasSuffix(target, "/stats"):
		return "/api/v1/jobs/stats"
	case strings.HasSuffix(target, "/history"):
		return "/api/v1/jobs/history"
	case strings.Count(target, "/") > 3:
		return "/api/v1/jobs/{id}"
	default:
		return "/api/v1/jobs"
	}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid envelope: %v\n%s", err, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("invalid data: %v\n%s", err, envelope.Data)
		}
	}
}

func TestListJobs(t *testing.T) {
	s := testSession(t)
	rec := doRequest(t, s, newHandler().ListJobs, http.MethodGet, "/api/v1/jobs", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var jobs []models.FreightJob
	decodeData(t, rec, &jobs)
	if len(jobs) != 5 {
		t.Fatalf("got %d jobs, want the 5 seeded ones", len(jobs))
	}
	if jobs[0].ID != "j1" {
		t.Errorf("first job = %s, want j1", jobs[0].ID)
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		jobID    string
		body     string
		wantCode int
	}{
		{"valid start transit", "j1", `{"status":"in_transit"}`, http.StatusOK},
		{"unknown job", "nope", `{"status":"in_transit"}`, http.StatusNotFound},
		{"skipping a stage", "j2", `{"status":"delivered"}`, http.StatusUnprocessableEntity},
		{"unknown status", "j2", `{"status":"teleported"}`, http.StatusUnprocessableEntity},
		{"malformed body", "j2", `{status}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSession(t)
			rec := doRequest(t, s, newHandler().UpdateStatus, http.MethodPatch, "/api/v1/jobs/"+tt.jobID, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d\n%s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestUpdateStatusTerminalConflict(t *testing.T) {
	s := testSession(t)
	h := newHandler()

	doRequest(t, s, h.UpdateStatus, http.MethodPatch, "/api/v1/jobs/j1", `{"status":"in_transit"}`)
	doRequest(t, s, h.UpdateStatus, http.MethodPatch, "/api/v1/jobs/j1", `{"status":"delivered"}`)

	rec := doRequest(t, s, h.UpdateStatus, http.MethodPatch, "/api/v1/jobs/j1", `{"status":"canceled"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("reopening a delivered job: status = %d, want 409", rec.Code)
	}
}

func TestGetStats(t *testing.T) {
	s := testSession(t)
	h := newHandler()

	doRequest(t, s, h.UpdateStatus, http.MethodPatch, "/api/v1/jobs/j1", `{"status":"in_transit"}`)
	doRequest(t, s, h.UpdateStatus, http.MethodPatch, "/api/v1/jobs/j1", `{"status":"delivered"}`)

	rec := doRequest(t, s, h.GetStats, http.MethodGet, "/api/v1/jobs/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats models.Stats
	decodeData(t, rec, &stats)
	if stats.Delivered != 1 || stats.Pending != 4 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.TotalEarned <= 0 {
		t.Fatal("delivered job should contribute earnings")
	}
}

func TestHistoryWithoutDatabase(t *testing.T) {
	s := testSession(t)
	rec := doRequest(t, s, newHandler().History, http.MethodGet, "/api/v1/jobs/history", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	s := testSession(t)
	rec := doRequest(t, s, newHandler().UploadPhoto, http.MethodPost, "/api/v1/jobs/j1/photo", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
