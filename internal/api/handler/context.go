package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/api/middleware"
	"github.com/actionauto/crm-api/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Auth
// middleware. A miss means a route was registered without the middleware,
// which is a wiring bug, so fail closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.CtxUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
