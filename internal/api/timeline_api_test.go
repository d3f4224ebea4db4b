package api

import (
	"net/http"
	"testing"
)

func TestSetDueDateReturnsDerivedTimeline(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/profile/due-date", map[string]any{
		"date": "2025-08-15",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected due-date status 200, got %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	if got := payload["current_week"].(float64); got != 22 {
		t.Fatalf("expected current week 22, got %v", got)
	}
	if got := payload["trimester"].(float64); got != 2 {
		t.Fatalf("expected trimester 2, got %v", got)
	}
	if got, _ := payload["last_menstrual_period"].(string); got != "2024-11-08" {
		t.Fatalf("expected LMP back-filled to 2024-11-08, got %q", got)
	}
	if overdue := payload["is_overdue"].(bool); overdue {
		t.Fatal("did not expect the pregnancy to be overdue")
	}
}

func TestSetLMPDerivesDueDate(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/profile/lmp", map[string]any{
		"date": "2024-11-08",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected lmp status 200, got %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	if got, _ := payload["due_date"].(string); got != "2025-08-15" {
		t.Fatalf("expected derived due date 2025-08-15, got %q", got)
	}
	if got := payload["current_week"].(float64); got != 22 {
		t.Fatalf("expected current week 22, got %v", got)
	}
}

func TestGetTimelinePersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	setResponse := doJSON(t, app, authCookie, http.MethodPost, "/api/profile/due-date", map[string]any{
		"date": "2025-08-15",
	})
	setResponse.Body.Close()

	response := doJSON(t, app, authCookie, http.MethodGet, "/api/timeline", nil)
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected timeline status 200, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	if got, _ := payload["due_date"].(string); got != "2025-08-15" {
		t.Fatalf("expected persisted due date, got %q", got)
	}
	if got := payload["trimester"].(float64); got != 2 {
		t.Fatalf("expected trimester 2, got %v", got)
	}
}

func TestSetDueDateRejectsMalformedDate(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/profile/due-date", map[string]any{
		"date": "15.08.2025",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected due-date status 400, got %d", response.StatusCode)
	}
}

func TestGetTimelineWithoutDatesIsEmptyButValid(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodGet, "/api/timeline", nil)
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected timeline status 200, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	if payload["due_date"] != nil {
		t.Fatalf("expected no due date, got %v", payload["due_date"])
	}
	if got := payload["current_week"].(float64); got != 0 {
		t.Fatalf("expected week 0 without dates, got %v", got)
	}
}
