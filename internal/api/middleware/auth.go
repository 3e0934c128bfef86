package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/domain"
)

const identityKey = "identity"

var errMissingBearer = errors.New("missing bearer token")

// IdentityResolver turns a bearer token into an Identity.
type IdentityResolver interface {
	Resolve(token string) (domain.Identity, error)
}

// Auth resolves the bearer token and stores the Identity in the context.
// Every failure is an *domain.AuthError so the response is a uniform 401;
// the failure kind is only logged and counted.
func Auth(resolver IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject(c, log, &domain.AuthError{Kind: domain.AuthInvalidToken, Err: errMissingBearer})
			}

			id, err := resolver.Resolve(token)
			if err != nil {
				var authErr *domain.AuthError
				if !errors.As(err, &authErr) {
					authErr = &domain.AuthError{Kind: domain.AuthInvalidToken, Err: err}
				}
				return reject(c, log, authErr)
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the Identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(c echo.Context, log zerolog.Logger, err *domain.AuthError) error {
	reason := string(err.Kind)
	if errors.Is(err, errMissingBearer) {
		reason = "missing_header"
	}
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	log.Debug().
		Err(err).
		Str("reason", reason).
		Str("path", c.Path()).
		Msg("authentication failed")
	return err
}
