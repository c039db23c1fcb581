package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.NewValidationError("email format is invalid"), http.StatusBadRequest, "email format is invalid"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "email or password incorrect"},
		{domain.ErrAccountDisabled, http.StatusForbidden, domain.ErrAccountDisabled.Error()},
		{domain.ErrAccountNotFound, http.StatusNotFound, domain.ErrAccountNotFound.Error()},
		{fmt.Errorf("insert: %w", domain.ErrEmailExists), http.StatusConflict, "email already in use"},
		{domain.ErrLoginInFlight, http.StatusConflict, domain.ErrLoginInFlight.Error()},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error()},
		{domain.ErrSystem, http.StatusInternalServerError, "system error, please try again"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "system error, please try again"},
		{echo.NewHTTPError(http.StatusNotFound, "screen not found"), http.StatusNotFound, "screen not found"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		h(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body.Error != tc.msg {
			t.Errorf("%v: expected %q, got %q", tc.err, tc.msg, body.Error)
		}
	}
}
