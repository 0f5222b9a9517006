package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carreto-freight-api/internal/quote/models"
	"carreto-freight-api/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	manager := session.NewManager(session.Factory{
		TickInterval: time.Hour,
		Logger:       logger,
	}, time.Hour, logger)
	return manager.Create("Maria", session.RoleClient)
}

func newHandler() *QuoteHandler {
	return NewQuoteHandler(nil, nil, nil, nil, slog.New(slog.DiscardHandler))
}

func doRequest(t *testing.T, s *session.Session, handler http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(session.NewContext(req.Context(), s))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeDraft(t *testing.T, rec *httptest.ResponseRecorder) models.Draft {
	t.Helper()
	var envelope struct {
		Data models.Draft `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response: %v\n%s", err, rec.Body.String())
	}
	return envelope.Data
}

func TestQuoteFlow(t *testing.T) {
	s := testSession(t)
	h := newHandler()

	// Fresh draft
	rec := doRequest(t, s, h.StartQuote, http.MethodPost, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: status = %d", rec.Code)
	}
	draft := decodeDraft(t, rec)
	if draft.Step != models.StepRoute {
		t.Fatalf("fresh draft at step %d", draft.Step)
	}

	// Addresses typed, route still unresolved: Next is gated
	rec = doRequest(t, s, h.UpdateCurrent, http.MethodPatch,
		`{"pickup_address":"Rua Emilia Marengo, 500","address":"Av. Paulista, 1000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status = %d\n%s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, s, h.Next, http.MethodPost, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("gated next: status = %d, want 422", rec.Code)
	}

	// Simulate the directions resolution and walk to review
	s.Wizard.SetLeg(models.RouteLeg{DistanceText: "10,0 km", DistanceKm: 10})
	for range 5 {
		rec = doRequest(t, s, h.Next, http.MethodPost, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("next: status = %d\n%s", rec.Code, rec.Body.String())
		}
	}
	draft = decodeDraft(t, rec)
	if draft.Step != models.StepReview {
		t.Fatalf("step = %d, want review", draft.Step)
	}
	if !draft.Quote.Available {
		t.Fatal("quote should be priced with a resolved leg")
	}

	// Submit, reopen, submit again
	if rec = doRequest(t, s, h.Submit, http.MethodPost, ""); rec.Code != http.StatusOK {
		t.Fatalf("submit: status = %d", rec.Code)
	}
	if rec = doRequest(t, s, h.Edit, http.MethodPost, ""); rec.Code != http.StatusOK {
		t.Fatalf("edit: status = %d", rec.Code)
	}
	if rec = doRequest(t, s, h.Submit, http.MethodPost, ""); rec.Code != http.StatusOK {
		t.Fatalf("resubmit: status = %d", rec.Code)
	}

	// Finalize books the job at the front of the queue
	rec = doRequest(t, s, h.Finalize, http.MethodPost, `{"destination":"home"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("finalize: status = %d\n%s", rec.Code, rec.Body.String())
	}
	var booked struct {
		Data finalizeResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &booked); err != nil {
		t.Fatalf("invalid finalize response: %v", err)
	}
	if booked.Data.Destination != "home" {
		t.Errorf("destination = %q, want home", booked.Data.Destination)
	}

	s.Lock()
	jobs := s.Jobs()
	newest := jobs[0]
	s.Unlock()
	if len(jobs) != 6 {
		t.Fatalf("queue has %d jobs, want 6", len(jobs))
	}
	if newest.PickupAddress != "Rua Emilia Marengo, 500" {
		t.Errorf("booked job pickup = %q", newest.PickupAddress)
	}
	if !strings.HasPrefix(newest.ID, "#") {
		t.Errorf("booked job id = %q", newest.ID)
	}

	// The wizard is ready for the next quote
	if d := s.Wizard.Snapshot(); d.Step != models.StepRoute || d.Submitted {
		t.Fatalf("wizard did not reset: %+v", d)
	}
}

func TestStartQuoteWithPickupAddress(t *testing.T) {
	s := testSession(t)
	rec := doRequest(t, s, newHandler().StartQuote, http.MethodPost,
		`{"pickup_address":"Rua da Mooca, 3000"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if draft := decodeDraft(t, rec); draft.PickupAddress != "Rua da Mooca, 3000" {
		t.Errorf("pickup = %q", draft.PickupAddress)
	}
}

func TestLocateWithoutGeocoder(t *testing.T) {
	s := testSession(t)
	rec := doRequest(t, s, newHandler().LocateAddress, http.MethodGet, "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestFinalizeRequiresSubmission(t *testing.T) {
	s := testSession(t)
	rec := doRequest(t, s, newHandler().Finalize, http.MethodPost, `{}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestSuggestAddressesWithoutGeocoder(t *testing.T) {
	s := testSession(t)
	rec := doRequest(t, s, newHandler().SuggestAddresses, http.MethodGet, "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestDiscardResetsDraft(t *testing.T) {
	s := testSession(t)
	h := newHandler()

	doRequest(t, s, h.UpdateCurrent, http.MethodPatch, `{"observation":"frágil"}`)
	if d := s.Wizard.Snapshot(); d.Observation != "frágil" {
		t.Fatalf("patch lost: %+v", d)
	}

	rec := doRequest(t, s, h.DiscardCurrent, http.MethodDelete, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if d := s.Wizard.Snapshot(); d.Observation != "" {
		t.Fatal("discard should reset the draft")
	}
}
