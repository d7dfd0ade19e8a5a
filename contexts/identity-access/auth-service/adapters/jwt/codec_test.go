package jwtadapter

import (
	"testing"
	"time"

	"drafthub/contexts/identity-access/auth-service/ports"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Issue(ports.SessionClaims{
		UserID: "user-1",
		Email:  "admin@example.com",
		Role:   "SuperAdmin",
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "SuperAdmin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Issue(ports.SessionClaims{UserID: "user-1"}, time.Now().UTC().Add(-100*time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := codec.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	token, err := NewCodec("secret-a").Issue(ports.SessionClaims{UserID: "user-1"}, time.Now().UTC())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := NewCodec("secret-b").Verify(token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestCodecRejectsMalformedToken(t *testing.T) {
	if _, err := NewCodec("test-secret").Verify("not-a-token"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}
