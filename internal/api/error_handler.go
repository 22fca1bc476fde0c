package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/actionauto/crm-api/internal/api/handler"
	"github.com/actionauto/crm-api/internal/core/domain"
)

// Machine-readable error codes returned alongside the message. Clients use
// TOKEN_EXPIRED to trigger a silent re-login instead of a hard logout.
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeInvalidToken = "INVALID_TOKEN"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known domain
// errors to deterministic HTTP statuses, logs unexpected errors, and renders
// the standard envelope. When dev is true, 500 responses include the
// underlying error text.
func NewHTTPErrorHandler(log zerolog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := resolveError(err, log, c, dev)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, dev bool) (int, handler.Response) {
	fail := func(status int, msg string) (int, handler.Response) {
		return status, handler.Response{Success: false, Message: msg}
	}

	// Echo's own errors (bind failures, 404 from the router, 405, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fail(he.Code, fmt.Sprintf("%v", he.Message))
	}

	// Validation errors carry one message per field.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, handler.Response{
			Success: false,
			Message: "Validation failed",
			Errors:  ve.Fields,
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, handler.Response{Success: false, Message: "Token expired", Error: CodeTokenExpired}
	case errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized, handler.Response{Success: false, Message: "Invalid token", Error: CodeInvalidToken}
	case errors.Is(err, domain.ErrForbidden):
		return fail(http.StatusForbidden, "Access denied")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrLeadNotFound):
		return fail(http.StatusNotFound, "Lead not found")
	case errors.Is(err, domain.ErrTaskNotFound):
		return fail(http.StatusNotFound, "Task not found")
	case errors.Is(err, domain.ErrActivityNotFound):
		return fail(http.StatusNotFound, "Activity not found")
	case errors.Is(err, domain.ErrInvalidID):
		return fail(http.StatusBadRequest, "Invalid ID format")
	case errors.Is(err, domain.ErrDuplicateKey):
		return fail(http.StatusConflict, "Duplicate entry for a unique field")
	case errors.Is(err, domain.ErrAlreadyClockedIn):
		return fail(http.StatusBadRequest, "Already clocked in today")
	case errors.Is(err, domain.ErrNoActiveClockIn):
		return fail(http.StatusBadRequest, "No active clock-in found for today")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	msg := "Internal server error"
	if dev {
		msg = err.Error()
	}
	return fail(http.StatusInternalServerError, msg)
}
