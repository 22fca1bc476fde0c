package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// RequireRole rejects requests whose authenticated role is not in the
// allow-list. Must run after Auth.
func RequireRole(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(domain.Role)
			if !ok || !domain.RoleAllowed(role, allowed...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
