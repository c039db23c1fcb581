package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentalinx/backoffice/internal/api/middleware"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

// ctxAuth returns the session bound by the Session middleware. Its absence
// means the route was registered outside that middleware.
func ctxAuth(c echo.Context) (ports.AuthSession, error) {
	auth := middleware.CurrentAuth(c)
	if auth == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session context")
	}
	return auth, nil
}
