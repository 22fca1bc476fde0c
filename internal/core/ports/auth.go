package ports

import (
	"context"
	"time"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindActiveByUsername retrieves an active user by exact username match.
	// Inactive and missing users are indistinguishable to callers.
	FindActiveByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// TokenService issues and verifies signed, time-bound access tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Verify returns domain.ErrTokenExpired for expired tokens and
	// domain.ErrTokenMalformed for any other structural or cryptographic failure.
	Verify(raw string) (*domain.TokenClaims, error)
}

// AuthService implements login and profile retrieval.
type AuthService interface {
	// Login returns a signed token and the authenticated user. Missing,
	// inactive, and wrong-password cases all fail with ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
