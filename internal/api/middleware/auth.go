package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUser   = "user"
	CtxUserID = "userID"
	CtxRole   = "role"
)

// Auth verifies the Bearer token, loads the account it names, and injects the
// user into the request context. Tokens for deleted or deactivated accounts
// are rejected even when cryptographically valid.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return err
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrTokenMalformed
				}
				return err
			}
			if !user.IsActive {
				return domain.ErrTokenMalformed
			}

			c.Set(CtxUser, user)
			c.Set(CtxUserID, user.ID)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", domain.ErrTokenMalformed
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrTokenMalformed
	}
	return parts[1], nil
}
