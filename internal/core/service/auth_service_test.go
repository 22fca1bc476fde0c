package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/actionauto/crm-api/internal/core/domain"
)

type stubUserRepo struct {
	findActiveFn      func(ctx context.Context, username string) (*domain.User, error)
	findByIDFn        func(ctx context.Context, id string) (*domain.User, error)
	updateLastLoginFn func(ctx context.Context, id string, at time.Time) error
}

func (s *stubUserRepo) FindActiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findActiveFn(ctx, username)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if s.updateLastLoginFn != nil {
		return s.updateLastLoginFn(ctx, id, at)
	}
	return nil
}

func hashedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &domain.User{
		ID:           "64fd1c9aa2b3c4d5e6f70001",
		Name:         "Dana Reyes",
		Username:     "2026-00042",
		PasswordHash: string(hash),
		Role:         domain.RoleSalesRep,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	user := hashedUser(t, "correct horse")
	lastLoginTouched := false
	repo := &stubUserRepo{
		findActiveFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username != "2026-00042" {
				t.Fatalf("unexpected username lookup: %s", username)
			}
			return user, nil
		},
		updateLastLoginFn: func(ctx context.Context, id string, at time.Time) error {
			if id != user.ID {
				t.Fatalf("unexpected id: %s", id)
			}
			lastLoginTouched = true
			return nil
		},
	}
	svc := NewAuthService(repo, NewTokenService("test-secret", time.Hour), zerolog.Nop())

	token, got, err := svc.Login(context.Background(), "2026-00042", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if !lastLoginTouched {
		t.Fatalf("last login was not persisted")
	}
	if got.LastLogin == nil {
		t.Fatalf("last login not reflected on the returned user")
	}

	claims, err := NewTokenService("test-secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleSalesRep {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	user := hashedUser(t, "correct horse")
	repo := &stubUserRepo{
		findActiveFn: func(ctx context.Context, username string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, NewTokenService("test-secret", time.Hour), zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "2026-00042", "battery staple")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := &stubUserRepo{
		findActiveFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, NewTokenService("test-secret", time.Hour), zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user must look identical to a bad password, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	repo := &stubUserRepo{
		findActiveFn: func(ctx context.Context, username string) (*domain.User, error) {
			t.Fatalf("repository must not be queried for empty credentials")
			return nil, nil
		},
	}
	svc := NewAuthService(repo, NewTokenService("test-secret", time.Hour), zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")) != nil {
		t.Fatalf("hash does not match original password")
	}
}
