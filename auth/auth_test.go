// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret-that-is-long-enough-32"

func TestGenerateID(t *testing.T) {
	id1, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID() error = %v", err)
	}
	parsed, err := uuid.Parse(id1)
	if err != nil {
		t.Fatalf("GenerateID() returned invalid UUID %q: %v", id1, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("GenerateID() version = %d, want 7", parsed.Version())
	}

	// Test randomness - two IDs should be different
	id2, _ := GenerateID()
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs")
	}
}

func TestValidateAdminKey(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		expected string
		wantErr  bool
	}{
		{"valid key", "s3cret", "s3cret", false},
		{"wrong key", "wrong", "s3cret", true},
		{"prefix of key", "s3c", "s3cret", true},
		{"empty key", "", "s3cret", true},
		{"unconfigured key", "anything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.provided, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"missing header", "", "", ErrMissingToken},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", ErrInvalidToken},
		{"scheme only", "Bearer", "", ErrInvalidToken},
		{"blank token", "Bearer   ", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			got, err := BearerToken(req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BearerToken() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJWTVerifierRoundTrip(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, "movie-night")
	if err != nil {
		t.Fatal(err)
	}

	token, err := v.IssueToken("user-42", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	userID, err := v.ResolveUser(token)
	if err != nil {
		t.Fatalf("ResolveUser() error = %v", err)
	}
	if userID != "user-42" {
		t.Errorf("ResolveUser() = %q, want user-42", userID)
	}
}

func TestJWTVerifierRejects(t *testing.T) {
	v, _ := NewJWTVerifier(testSecret, "movie-night")
	other, _ := NewJWTVerifier("another-secret-that-is-long-enough", "movie-night")
	otherIssuer, _ := NewJWTVerifier(testSecret, "someone-else")

	expired, _ := v.IssueToken("user-1", -time.Minute)
	forged, _ := other.IssueToken("user-1", time.Hour)
	wrongIssuer, _ := otherIssuer.IssueToken("user-1", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", forged},
		{"wrong issuer", wrongIssuer},
		{"garbage", "not-a-jwt"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ResolveUser(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ResolveUser() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewJWTVerifierRequiresSecret(t *testing.T) {
	if _, err := NewJWTVerifier("", ""); err == nil {
		t.Error("expected error for empty secret")
	}
	v, _ := NewJWTVerifier(testSecret, "")
	if _, err := v.IssueToken("", time.Hour); err == nil {
		t.Error("expected error for empty user ID")
	}
}
