package sealer

import (
	"encoding/base64"
	"strings"
	"testing"
)

func testKey() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func TestShiftTokenRoundTrip(t *testing.T) {
	s, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	token, err := s.CreateShiftToken("booking-123", "carer-456")
	if err != nil {
		t.Fatalf("CreateShiftToken() error = %v", err)
	}

	if strings.Contains(token, "booking-123") || strings.Contains(token, "carer-456") {
		t.Errorf("token leaks plaintext IDs: %s", token)
	}

	bookingID, carerID, err := s.ParseShiftToken(token)
	if err != nil {
		t.Fatalf("ParseShiftToken() error = %v", err)
	}

	if bookingID != "booking-123" {
		t.Errorf("bookingID = %q, want %q", bookingID, "booking-123")
	}
	if carerID != "carer-456" {
		t.Errorf("carerID = %q, want %q", carerID, "carer-456")
	}
}

func TestShiftTokensAreUnique(t *testing.T) {
	s, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a, err := s.CreateShiftToken("b", "c")
	if err != nil {
		t.Fatalf("CreateShiftToken() error = %v", err)
	}
	b, err := s.CreateShiftToken("b", "c")
	if err != nil {
		t.Fatalf("CreateShiftToken() error = %v", err)
	}

	if a == b {
		t.Error("expected distinct tokens for identical payloads")
	}
}

func TestParseShiftTokenRejectsGarbage(t *testing.T) {
	s, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cases := []string{
		"",
		"not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("short")),
		base64.RawURLEncoding.EncodeToString([]byte("long enough but not a valid ciphertext at all")),
	}

	for _, token := range cases {
		if _, _, err := s.ParseShiftToken(token); err == nil {
			t.Errorf("ParseShiftToken(%q) expected error, got nil", token)
		}
	}
}

func TestParseShiftTokenWrongKey(t *testing.T) {
	s1, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s2, err := New(base64.StdEncoding.EncodeToString([]byte("fedcba9876543210fedcba9876543210")))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	token, err := s1.CreateShiftToken("booking-123", "carer-456")
	if err != nil {
		t.Fatalf("CreateShiftToken() error = %v", err)
	}

	if _, _, err := s2.ParseShiftToken(token); err == nil {
		t.Error("expected error parsing token sealed under a different key")
	}
}

func TestNewRejectsBadKeys(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not base64", "!!!"},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short key"))},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.key); err == nil {
				t.Errorf("New(%q) expected error, got nil", tt.key)
			}
		})
	}
}
