package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/service"
)

// NavigationHandler serves the menu and screen descriptors. Both are derived
// from the same permission check the gate uses.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

type navigationResponse struct {
	Role     domain.Role       `json:"role"`
	RoleName string            `json:"role_name"`
	Items    []domain.MenuItem `json:"items"`
}

type screenResponse struct {
	domain.MenuItem
	Role     domain.Role `json:"role"`
	RoleName string      `json:"role_name"`
}

// Navigation handles GET /v1/navigation.
//
// @Summary      Visible menu entries
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navigationResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Navigation(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	session, _ := auth.Current()
	role := session.Identity.Role
	return c.JSON(http.StatusOK, navigationResponse{
		Role:     role,
		RoleName: role.DisplayName(),
		Items:    service.Navigation(auth),
	})
}

// Screen handles GET /v1/screens/:screen. The route is gated on the screen's
// permission before this runs.
//
// @Summary      Open a screen
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Param        screen  path      string  true  "Screen ID"
// @Success      200     {object}  screenResponse
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /v1/screens/{screen} [get]
func (h *NavigationHandler) Screen(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	item, ok := domain.LookupScreen(c.Param("screen"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "screen not found")
	}

	session, _ := auth.Current()
	role := session.Identity.Role
	return c.JSON(http.StatusOK, screenResponse{
		MenuItem: item,
		Role:     role,
		RoleName: role.DisplayName(),
	})
}
