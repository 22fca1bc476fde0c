package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/core/domain"
)

type stubTokens struct {
	verifyFn func(raw string) (*domain.TokenClaims, error)
}

func (s *stubTokens) Issue(user *domain.User) (string, error) { return "", nil }

func (s *stubTokens) Verify(raw string) (*domain.TokenClaims, error) {
	return s.verifyFn(raw)
}

type stubUsers struct {
	findByIDFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUsers) FindActiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUsers) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return nil
}

func newAuthContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAuth_ValidToken(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "2026-00042", Role: domain.RoleSalesRep, IsActive: true}
	tokens := &stubTokens{
		verifyFn: func(raw string) (*domain.TokenClaims, error) {
			if raw != "good-token" {
				t.Fatalf("unexpected token: %s", raw)
			}
			return &domain.TokenClaims{UserID: "u1", Username: user.Username, Role: user.Role}, nil
		},
	}
	users := &stubUsers{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return user, nil
		},
	}

	c := newAuthContext("Bearer good-token")
	called := false
	err := Auth(tokens, users)(func(c echo.Context) error {
		called = true
		got, ok := c.Get(CtxUser).(*domain.User)
		if !ok || got.ID != "u1" {
			t.Fatalf("user not injected: %+v", c.Get(CtxUser))
		}
		if c.Get(CtxUserID) != "u1" {
			t.Fatalf("user id not injected")
		}
		if c.Get(CtxRole) != domain.RoleSalesRep {
			t.Fatalf("role not injected")
		}
		return nil
	})(c)

	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	c := newAuthContext("")
	err := Auth(&stubTokens{}, &stubUsers{})(failNext(t))(c)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	c := newAuthContext("Basic dXNlcjpwYXNz")
	err := Auth(&stubTokens{}, &stubUsers{})(failNext(t))(c)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := &stubTokens{
		verifyFn: func(raw string) (*domain.TokenClaims, error) {
			return nil, domain.ErrTokenExpired
		},
	}

	c := newAuthContext("Bearer stale")
	err := Auth(tokens, &stubUsers{})(failNext(t))(c)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expired tokens must keep their distinct error, got %v", err)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	tokens := &stubTokens{
		verifyFn: func(raw string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: "gone"}, nil
		},
	}
	users := &stubUsers{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	c := newAuthContext("Bearer orphaned")
	err := Auth(tokens, users)(failNext(t))(c)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("tokens for deleted users must be rejected, got %v", err)
	}
}

func TestAuth_InactiveUser(t *testing.T) {
	tokens := &stubTokens{
		verifyFn: func(raw string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: "u1"}, nil
		},
	}
	users := &stubUsers{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: "u1", IsActive: false}, nil
		},
	}

	c := newAuthContext("Bearer suspended")
	err := Auth(tokens, users)(failNext(t))(c)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("tokens for deactivated users must be rejected, got %v", err)
	}
}

func failNext(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}
