package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/actionauto/crm-api/internal/core/domain"
)

func roleContext(role any) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if role != nil {
		c.Set(CtxRole, role)
	}
	return c
}

func TestRequireRole_Allowed(t *testing.T) {
	c := roleContext(domain.RoleManager)
	called := false
	err := RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleManager)(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_Denied(t *testing.T) {
	c := roleContext(domain.RoleSalesRep)
	err := RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleManager)(failNext(t))(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_MissingRole(t *testing.T) {
	c := roleContext(nil)
	err := RequireRole(domain.RoleSuperAdmin)(failNext(t))(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden when auth never ran, got %v", err)
	}
}
