package auth

import (
	"errors"
	"testing"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	token, err := Sign("test-secret", "acct-1", "bidder")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := Verify("test-secret", token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "acct-1" {
		t.Fatalf("expected sub acct-1, got %q", claims.Subject)
	}
	if claims.Role != "bidder" {
		t.Fatalf("expected role bidder, got %q", claims.Role)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Sign("secret-a", "acct-1", "developer")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify("secret-b", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSignRequiresSecret(t *testing.T) {
	if _, err := Sign("", "acct-1", "admin"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := Verify("test-secret", "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
