package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/auth"
	"github.com/99minutos/user-management/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	gate := auth.NewRoleGate(allowed...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return &domain.AuthError{Kind: domain.AuthMissingClaims}
			}
			if err := gate.Check(id); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues(id.Role.String()).Inc()
				return err
			}
			return next(c)
		}
	}
}
