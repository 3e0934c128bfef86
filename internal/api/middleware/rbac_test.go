package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/core/domain"
)

func newRBACContext(id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(identityKey, *id)
	}
	return c, rec
}

func TestRBAC_Allows(t *testing.T) {
	c, rec := newRBACContext(&domain.Identity{Email: "m@example.com", Role: domain.RoleManager})

	called := false
	mw := RBAC(domain.RoleAdmin, domain.RoleManager)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_AcceptsStringLiterals(t *testing.T) {
	c, _ := newRBACContext(&domain.Identity{Email: "a@example.com", Role: domain.RoleAdmin})

	handler := RBAC("ADMIN")(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("expected ADMIN admitted, got %v", err)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	c, _ := newRBACContext(&domain.Identity{Email: "u@example.com", Role: domain.RoleAuthenticated})

	mw := RBAC(domain.RoleAdmin, domain.RoleManager)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var authzErr *domain.AuthzError
	if !errors.As(err, &authzErr) {
		t.Fatalf("expected *domain.AuthzError, got %T (%v)", err, err)
	}
	if authzErr.Role != domain.RoleAuthenticated {
		t.Fatalf("unexpected role in error: %s", authzErr.Role)
	}
	if !errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected forbidden, not unauthorized")
	}
}

func TestRBAC_MissingIdentityIsUnauthorized(t *testing.T) {
	c, _ := newRBACContext(nil)

	err := RBAC(domain.RoleAdmin)(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
