package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentalinx/backoffice/internal/api/metrics"
	"github.com/rentalinx/backoffice/internal/core/domain"
)

// TokenIssuer signs the bearer token naming the caller's browser context.
type TokenIssuer interface {
	Issue(contextID string, session domain.Session) (string, error)
}

type AuthHandler struct {
	tokens TokenIssuer
}

func NewAuthHandler(tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      domain.Identity `json:"user"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type sessionResponse struct {
	State     string           `json:"state"`
	User      *domain.Identity `json:"user,omitempty"`
	RoleName  string           `json:"role_name,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
}

// Login authenticates the caller and returns a token for its browser context.
// A caller that already holds a valid token keeps its context and the new
// session replaces the old one.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	session, err := auth.Login(c.Request().Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	token, err := h.tokens.Issue(auth.ContextID(), *session)
	if err != nil {
		// No token reaches the caller, so the stored session is unreachable.
		_ = auth.Logout(c.Request().Context())
		metrics.LoginsTotal.WithLabelValues(loginResult(domain.ErrSystem)).Inc()
		return fmt.Errorf("sign token: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues(loginResult(nil)).Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      session.Identity,
	})
}

// Logout clears the caller's session. It is idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      500   {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}
	if err := auth.Logout(c.Request().Context()); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword accepts a reset request. The answer does not reveal whether
// the email belongs to an account.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Account email"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}
	if err := auth.ResetPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Session reports the caller's authentication state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	resp := sessionResponse{State: auth.State().String()}
	if session, ok := auth.Current(); ok {
		identity := session.Identity
		expiresAt := session.ExpiresAt
		resp.User = &identity
		resp.RoleName = identity.Role.DisplayName()
		resp.ExpiresAt = &expiresAt
	}
	return c.JSON(http.StatusOK, resp)
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "rate_limited"
	case errors.Is(err, domain.ErrLoginInFlight):
		return "in_flight"
	default:
		return "error"
	}
}
