package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/services"
	"gorm.io/gorm"
)

// Fixed test day: 126 days before the 2025-08-15 due date used across the
// timeline tests, which puts the pregnancy in week 22.
var testToday = time.Date(2025, time.April, 11, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithClock(t, services.FixedClock{Time: testToday})
}

func newTestAppWithClock(t *testing.T, clock services.Clock) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppOnFile(t, filepath.Join(t.TempDir(), "gravida-test.db"), clock)
}

// newTestAppOnFile builds an app on an explicit database path so tests can
// reopen the same file and simulate a process restart.
func newTestAppOnFile(t *testing.T, databasePath string, clock services.Clock) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, "test-secret-key", time.UTC, false, clock)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

// registerTestOwner creates the owner account through the public API and
// returns the auth cookie plus the one-time recovery code.
func registerTestOwner(t *testing.T, app *fiber.App) (string, string) {
	t.Helper()

	response := doJSON(t, app, "", http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "owner@example.com",
		"password": "StrongPass1",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	recoveryCode, _ := payload["recovery_code"].(string)
	if recoveryCode == "" {
		t.Fatal("expected register response to include a recovery code")
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == "gravida_auth" && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value, recoveryCode
		}
	}

	t.Fatal("auth cookie is missing in register response")
	return "", ""
}

func doJSON(t *testing.T, app *fiber.App, authCookie string, method string, target string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, target, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	payload := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}
