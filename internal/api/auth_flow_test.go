package api

import (
	"net/http"
	"regexp"
	"testing"
)

func TestSetupStatusFlipsAfterRegistration(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	response := doJSON(t, app, "", http.MethodGet, "/api/auth/setup-status", nil)
	defer response.Body.Close()
	if needsSetup, _ := decodeBody(t, response)["needs_setup"].(bool); !needsSetup {
		t.Fatal("expected needs_setup=true before registration")
	}

	registerTestOwner(t, app)

	response = doJSON(t, app, "", http.MethodGet, "/api/auth/setup-status", nil)
	defer response.Body.Close()
	if needsSetup, _ := decodeBody(t, response)["needs_setup"].(bool); needsSetup {
		t.Fatal("expected needs_setup=false after registration")
	}
}

func TestRegisterIsSingleOwner(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestOwner(t, app)

	response := doJSON(t, app, "", http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "intruder@example.com",
		"password": "AnotherPass1",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected second registration status 409, got %d", response.StatusCode)
	}
}

func TestRegisterRecoveryCodeFormat(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	_, recoveryCode := registerTestOwner(t, app)

	pattern := regexp.MustCompile(`^[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)
	if !pattern.MatchString(recoveryCode) {
		t.Fatalf("unexpected recovery code format: %q", recoveryCode)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestOwner(t, app)

	response := doJSON(t, app, "", http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected login status 401, got %d", response.StatusCode)
	}
}

func TestLoginSetsAuthCookie(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestOwner(t, app)

	response := doJSON(t, app, "", http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "Owner@Example.com",
		"password": "StrongPass1",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
	found := false
	for _, cookie := range response.Cookies() {
		if cookie.Name == "gravida_auth" && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("auth cookie is missing in login response")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestOwner(t, app)

	response := doJSON(t, app, "", http.MethodGet, "/api/timeline", nil)
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected timeline status 401 without cookie, got %d", response.StatusCode)
	}
}

func TestRecoverRotatesRecoveryCode(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	_, recoveryCode := registerTestOwner(t, app)

	response := doJSON(t, app, "", http.MethodPost, "/api/auth/recover", map[string]any{
		"email":         "owner@example.com",
		"recovery_code": recoveryCode,
		"new_password":  "FreshPass22",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected recover status 200, got %d", response.StatusCode)
	}
	newCode, _ := decodeBody(t, response)["recovery_code"].(string)
	if newCode == "" || newCode == recoveryCode {
		t.Fatalf("expected a fresh recovery code, got %q", newCode)
	}

	// The used code must not work a second time.
	replay := doJSON(t, app, "", http.MethodPost, "/api/auth/recover", map[string]any{
		"email":         "owner@example.com",
		"recovery_code": recoveryCode,
		"new_password":  "FreshPass33",
	})
	defer replay.Body.Close()
	if replay.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected replayed recovery status 401, got %d", replay.StatusCode)
	}

	login := doJSON(t, app, "", http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "owner@example.com",
		"password": "FreshPass22",
	})
	defer login.Body.Close()
	if login.StatusCode != http.StatusOK {
		t.Fatalf("expected login with recovered password to succeed, got %d", login.StatusCode)
	}
}

func TestChangePasswordFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie, _ := registerTestOwner(t, app)

	response := doJSON(t, app, authCookie, http.MethodPost, "/api/settings/change-password", map[string]any{
		"current_password": "StrongPass1",
		"new_password":     "EvenStronger2",
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected change-password status 200, got %d", response.StatusCode)
	}

	oldLogin := doJSON(t, app, "", http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "owner@example.com",
		"password": "StrongPass1",
	})
	defer oldLogin.Body.Close()
	if oldLogin.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected old password to be rejected, got %d", oldLogin.StatusCode)
	}
}
