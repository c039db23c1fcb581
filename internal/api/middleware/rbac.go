package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentalinx/backoffice/internal/api/metrics"
	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/service"
)

// AccessDenied is the body rendered when an authenticated user lacks the
// permission. It names the role, never the permission set.
type AccessDenied struct {
	Error    string `json:"error"`
	Role     string `json:"role"`
	RoleName string `json:"role_name"`
	Hint     string `json:"hint,omitempty"`
}

// RequirePermission gates a route on perm. An empty perm admits any
// authenticated user.
func RequirePermission(perm domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return gate(c, perm, next)
		}
	}
}

// RequireScreen gates a route on the permission of the menu screen named by
// the path parameter param.
func RequireScreen(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			item, ok := domain.LookupScreen(c.Param(param))
			if !ok {
				return echo.NewHTTPError(http.StatusNotFound, "screen not found")
			}
			return gate(c, item.Permission, next)
		}
	}
}

func gate(c echo.Context, perm domain.Permission, next echo.HandlerFunc) error {
	auth := CurrentAuth(c)
	if auth == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	decision := service.Decide(auth, perm)
	label := string(perm)
	if label == "" {
		label = "any"
	}
	metrics.GateDecisionsTotal.WithLabelValues(label, decision.String()).Inc()

	switch decision {
	case service.GateAllow:
		return next(c)
	case service.GateLoading:
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session is loading"})
	case service.GateHidden:
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	session, _ := auth.Current()
	role := session.Identity.Role
	return c.JSON(http.StatusForbidden, AccessDenied{
		Error:    "access denied",
		Role:     string(role),
		RoleName: role.DisplayName(),
		Hint:     role.AccessHint(),
	})
}
