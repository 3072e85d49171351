package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHMACSigner_SignAndUnsign(t *testing.T) {
	signer := NewHMACSigner("secret")
	token := signer.Sign("session-42")
	if !strings.HasPrefix(token, "session-42.") {
		t.Fatalf("unexpected token layout: %q", token)
	}

	value, err := signer.Unsign(token)
	if err != nil {
		t.Fatalf("unsign: %v", err)
	}
	if value != "session-42" {
		t.Fatalf("unexpected value: %q", value)
	}
}

func TestHMACSigner_RejectsMalformed(t *testing.T) {
	signer := NewHMACSigner("secret")
	for _, token := range []string{"", "nodot", ".sig", "value."} {
		if _, err := signer.Unsign(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestHMACSigner_RejectsTampering(t *testing.T) {
	signer := NewHMACSigner("secret")
	token := signer.Sign("abc")
	tampered := "abd" + token[3:]
	if _, err := signer.Unsign(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	other := NewHMACSigner("other-secret")
	if _, err := other.Unsign(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}
