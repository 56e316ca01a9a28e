package auth

import (
	"testing"
)

func TestTokenIssuer_Issue(t *testing.T) {
	issuer, err := NewTokenIssuer()
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}

	token := issuer.Issue()
	if len(token) != TokenLength {
		t.Errorf("token length = %d, want %d", len(token), TokenLength)
	}
}

func TestTokenIssuer_Uniqueness(t *testing.T) {
	issuer, err := NewTokenIssuer()
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token := issuer.Issue()
		if seen[token] {
			t.Fatalf("duplicate token after %d issues: %s", i, token)
		}
		seen[token] = true
	}
}
