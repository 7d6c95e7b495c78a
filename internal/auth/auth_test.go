package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/Subby575/irctc/internal/domain"
)

func TestTokens_RoundTrip(t *testing.T) {
	t.Parallel()

	tokens := NewTokens(make([]byte, 64), make([]byte, 32), time.Hour)

	token, err := tokens.Issue(Claims{UserID: "user-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokens_RejectsTampering(t *testing.T) {
	t.Parallel()

	tokens := NewTokens(make([]byte, 64), make([]byte, 32), time.Hour)

	token, err := tokens.Issue(Claims{UserID: "user-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := strings.Map(func(r rune) rune {
		if r == 'a' {
			return 'b'
		}
		return r
	}, token)
	if tampered == token {
		tampered = token[:len(token)-1]
	}
	if _, err := tokens.Verify(tampered); err == nil {
		t.Fatalf("expected tampered token to fail verification")
	}
}

func TestTokens_RejectsOtherKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokens([]byte(strings.Repeat("a", 64)), []byte(strings.Repeat("b", 32)), time.Hour)
	verifier := NewTokens([]byte(strings.Repeat("c", 64)), []byte(strings.Repeat("d", 32)), time.Hour)

	token, err := issuer.Issue(Claims{UserID: "user-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("expected token signed with another key to fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret" {
		t.Fatalf("expected hash to differ from password")
	}
	if !CheckPassword(hash, "secret") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "other") {
		t.Fatalf("expected wrong password to fail")
	}
}
