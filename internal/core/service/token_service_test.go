package service

import (
	"errors"
	"testing"
	"time"

	"github.com/actionauto/crm-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "64fd1c9aa2b3c4d5e6f70001",
		Name:     "Dana Reyes",
		Username: "2026-00042",
		Role:     domain.RoleSalesRep,
		IsActive: true,
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	raw, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "64fd1c9aa2b3c4d5e6f70001" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Username != "2026-00042" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if claims.Role != domain.RoleSalesRep {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	// Bypass the constructor's ttl floor to mint an already-expired token.
	svc := &TokenService{secret: []byte("test-secret"), ttl: -time.Minute}

	raw, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.Verify(raw)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_VerifyGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("not.a.token")
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	raw, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = verifier.Verify(raw)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
