package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// TokenService issues and verifies HS256-signed access tokens. Tokens are
// valid for their full lifetime once issued; there is no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue encodes the user's id, username, and role plus issued-at/expiry claims.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates raw. Expired tokens fail with
// domain.ErrTokenExpired; every other structural or cryptographic failure is
// domain.ErrTokenMalformed, so clients can tell refresh from re-login.
func (s *TokenService) Verify(raw string) (*domain.TokenClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.TokenClaims{
		UserID:   claims.Subject,
		Username: claims.Username,
		Role:     domain.Role(claims.Role),
	}, nil
}
