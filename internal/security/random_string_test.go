package security

import (
	"strings"
	"testing"
)

func TestRandomStringLengthAndAlphabet(t *testing.T) {
	value, err := RandomString(32, "ab")
	if err != nil {
		t.Fatalf("RandomString() unexpected error: %v", err)
	}
	if len(value) != 32 {
		t.Fatalf("expected length 32, got %d", len(value))
	}
	for _, char := range value {
		if char != 'a' && char != 'b' {
			t.Fatalf("character %q outside alphabet", char)
		}
	}
}

func TestRandomStringRejectsBadInput(t *testing.T) {
	if _, err := RandomString(-1, "abc"); err == nil {
		t.Fatalf("expected error for negative length")
	}
	if _, err := RandomString(4, ""); err == nil {
		t.Fatalf("expected error for empty alphabet")
	}
	if value, err := RandomString(0, "abc"); err != nil || value != "" {
		t.Fatalf("expected empty string for zero length, got %q (%v)", value, err)
	}
}

func TestNewRecoveryCodeFormat(t *testing.T) {
	code, err := NewRecoveryCode()
	if err != nil {
		t.Fatalf("NewRecoveryCode() unexpected error: %v", err)
	}
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		t.Fatalf("expected three groups, got %q", code)
	}
	for _, part := range parts {
		if len(part) != 4 {
			t.Fatalf("expected 4-character groups, got %q", code)
		}
	}
}

func TestNormalizeRecoveryCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "abcd-efgh-jklm", want: "ABCDEFGHJKLM"},
		{raw: " ABCD EFGH JKLM ", want: "ABCDEFGHJKLM"},
		{raw: "ABCDEFGHJKLM", want: "ABCDEFGHJKLM"},
	}
	for _, testCase := range tests {
		if got := NormalizeRecoveryCode(testCase.raw); got != testCase.want {
			t.Fatalf("NormalizeRecoveryCode(%q) = %q, want %q", testCase.raw, got, testCase.want)
		}
	}
}
