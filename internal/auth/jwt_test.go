package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "feedback-test")
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	token, expiresAt, err := mgr.Issue("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}
	if remaining := time.Until(expiresAt); remaining > AccessTokenExpiry {
		t.Fatalf("expected expiry within %v, got %v", AccessTokenExpiry, remaining)
	}

	email, err := mgr.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("expected subject user@example.com, got %s", email)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", ""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	mgr, err := NewManager("test-secret", "")
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	if _, _, err := mgr.Issue("  "); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	mgr, err := NewManager("test-secret", "feedback-test")
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "user@example.com",
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error signing token: %v", err)
	}

	if _, err := mgr.Validate(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	other, err := NewManager("other-secret", "feedback-test")
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	token, _, err := other.Issue("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	mgr, err := NewManager("test-secret", "feedback-test")
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	if _, err := mgr.Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	mgr, err := NewManager("test-secret", "feedback-test")
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	if _, err := mgr.Validate("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	mgr, err := NewManager("test-secret", "feedback-test")
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error signing token: %v", err)
	}

	if _, err := mgr.Validate(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
