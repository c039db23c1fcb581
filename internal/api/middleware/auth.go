package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rentalinx/backoffice/internal/api/metrics"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

// AuthKey is the echo context key holding the request's ports.AuthSession.
const AuthKey = "auth"

// ContextResolver extracts the browser context ID from a bearer token.
type ContextResolver interface {
	ContextID(token string) (string, error)
}

// Session binds every request to a browser context and restores its session.
// A missing or invalid token gets a fresh context, which restores as
// unauthenticated; rejection is left to RequirePermission.
func Session(factory ports.AuthSessionFactory, tokens ContextResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextID := ""
			if token, ok := bearerToken(c); ok {
				if sid, err := tokens.ContextID(token); err == nil {
					contextID = sid
				}
			}
			if contextID == "" {
				contextID = uuid.NewString()
			}

			auth := factory.ForContext(contextID)
			auth.Initialize(c.Request().Context())
			metrics.SessionRestoresTotal.WithLabelValues(auth.State().String()).Inc()

			c.Set(AuthKey, auth)
			return next(c)
		}
	}
}

// CurrentAuth returns the session bound by Session, or nil.
func CurrentAuth(c echo.Context) ports.AuthSession {
	auth, _ := c.Get(AuthKey).(ports.AuthSession)
	return auth
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
