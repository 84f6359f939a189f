package utils

import (
	"testing"
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	u := &model.User{
		ID:    "7f9d0a34-6a4f-4cf5-9a34-1f8b2a0c9e11",
		Email: "lena@promopilot.io",
		Role:  model.RoleMarketing,
	}

	signed, expires, err := NewAccessToken("test-secret", "promopilot", "promopilot-clients", u, 15*time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Fatal("token already expired")
	}

	claims, err := ParseAccessToken("test-secret", signed)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != u.ID {
		t.Fatalf("subject = %q, want %q", claims.Subject, u.ID)
	}
	if claims.Email != u.Email || claims.Role != model.RoleMarketing {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "promopilot" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	u := &model.User{ID: "u1", Email: "a@b.c", Role: model.RoleFinance}
	signed, _, err := NewAccessToken("secret-a", "promopilot", "promopilot-clients", u, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAccessToken("secret-b", signed); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	u := &model.User{ID: "u1", Email: "a@b.c", Role: model.RoleFinance}
	signed, _, err := NewAccessToken("secret", "promopilot", "promopilot-clients", u, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAccessToken("secret", signed); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestRefreshTokenUniqueAndHashed(t *testing.T) {
	a, _, err := NewRefreshToken(24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := NewRefreshToken(24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two refresh tokens collided")
	}

	if HashRefreshToken(a) != HashRefreshToken(a) {
		t.Fatal("hash is not deterministic")
	}
	if HashRefreshToken(a) == HashRefreshToken(b) {
		t.Fatal("different tokens share a hash")
	}
	if len(HashRefreshToken(a)) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(HashRefreshToken(a)))
	}
}
