package api

import (
	"net/http"
	"testing"
)

func TestUpsertMoodEntryMutatesSameDay(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	first := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/moods/2025-04-11", map[string]any{
		"mood": "good",
		"note": "quiet morning",
	})
	first.Body.Close()
	if first.StatusCode != http.StatusOK {
		t.Fatalf("expected upsert status 200, got %d", first.StatusCode)
	}

	second := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/moods/2025-04-11", map[string]any{
		"mood": "excellent",
	})
	defer second.Body.Close()
	if second.StatusCode != http.StatusOK {
		t.Fatalf("expected upsert status 200, got %d", second.StatusCode)
	}

	entries, _ := decodeBody(t, second)["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected a single entry for the day, got %d", len(entries))
	}
	entry, _ := entries[0].(map[string]any)
	if got, _ := entry["mood"].(string); got != "excellent" {
		t.Fatalf("expected second write to win, got mood %q", got)
	}
}

func TestUpsertMoodEntryRejectsUnknownMood(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/moods/2025-04-11", map[string]any{
		"mood": "ecstatic",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected upsert status 400, got %d", response.StatusCode)
	}
}

func TestUpsertSymptomEntryValidatesSeverity(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/symptoms/2025-04-11", map[string]any{
		"symptoms": []string{"nausea"},
		"severity": 6,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected upsert status 400, got %d", response.StatusCode)
	}
}

func TestUpsertJournalEntryRequiresBody(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/journal/2025-04-11", map[string]any{
		"title": "untitled",
		"body":  "   ",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected upsert status 400, got %d", response.StatusCode)
	}
}

func TestUpsertToUnknownLogReturns404(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/dreams/2025-04-11", map[string]any{})
	defer response.Body.Close()

	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected upsert status 404, got %d", response.StatusCode)
	}
}

func TestListEntriesReturnsPersistedLog(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	write := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/journal/2025-04-10", map[string]any{
		"title": "week twenty-two",
		"body":  "<p>Felt the baby move during breakfast today.</p>",
	})
	write.Body.Close()

	response := doJSON(t, app, authCookie, http.MethodGet, "/api/entries/journal", nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected list status 200, got %d", response.StatusCode)
	}

	entries, _ := decodeBody(t, response)["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one journal entry, got %d", len(entries))
	}
	entry, _ := entries[0].(map[string]any)
	if got, _ := entry["title"].(string); got != "week twenty-two" {
		t.Fatalf("expected persisted title, got %q", got)
	}
}

func TestStatsOverviewFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	// Three consecutive mood days ending today.
	for _, day := range []string{"2025-04-09", "2025-04-10", "2025-04-11"} {
		response := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/moods/"+day, map[string]any{
			"mood": "good",
		})
		response.Body.Close()
		if response.StatusCode != http.StatusOK {
			t.Fatalf("expected mood upsert status 200, got %d", response.StatusCode)
		}
	}

	symptom := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/symptoms/2025-04-11", map[string]any{
		"symptoms": []string{"heartburn", "fatigue"},
		"severity": 2,
	})
	symptom.Body.Close()

	journal := doJSON(t, app, authCookie, http.MethodPost, "/api/entries/journal/2025-04-11", map[string]any{
		"body": "<p>one two three four five</p>",
	})
	journal.Body.Close()

	response := doJSON(t, app, authCookie, http.MethodGet, "/api/stats", nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected stats status 200, got %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	if got := payload["mood_streak"].(float64); got != 3 {
		t.Fatalf("expected mood streak 3, got %v", got)
	}
	if got := payload["total_mood_entries"].(float64); got != 3 {
		t.Fatalf("expected 3 mood entries, got %v", got)
	}
	if got, _ := payload["most_common_mood"].(string); got != "good" {
		t.Fatalf("expected most common mood good, got %q", got)
	}
	if got, _ := payload["most_common_symptom"].(string); got != "heartburn" {
		t.Fatalf("expected most common symptom heartburn, got %q", got)
	}
	if got := payload["total_journal_words"].(float64); got != 5 {
		t.Fatalf("expected 5 journal words, got %v", got)
	}
	if got := payload["reading_time_minutes"].(float64); got != 1 {
		t.Fatalf("expected reading time 1 minute, got %v", got)
	}
	if got := payload["mood_average_7_days"].(float64); got != 4 {
		t.Fatalf("expected 7-day mood average 4, got %v", got)
	}
}
