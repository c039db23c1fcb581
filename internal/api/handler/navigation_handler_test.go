package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

func TestNavigationHandler_Navigation(t *testing.T) {
	cases := []struct {
		role  domain.Role
		count int
	}{
		{domain.RoleAdmin, len(domain.Menu)},
		{domain.RoleManager, len(domain.Menu) - 1},
		{domain.RoleTelemarketingMobil, 1},
	}
	for _, tc := range cases {
		c, rec := newJSONContext(http.MethodGet, "/v1/navigation", "", signedInAs(tc.role))
		if err := NewNavigationHandler().Navigation(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.role, err)
		}

		var resp navigationResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(resp.Items) != tc.count {
			t.Fatalf("%s: expected %d items, got %d", tc.role, tc.count, len(resp.Items))
		}
		if resp.RoleName != tc.role.DisplayName() {
			t.Fatalf("%s: unexpected role name %s", tc.role, resp.RoleName)
		}
	}
}

func TestNavigationHandler_TelemarketingSeesCustomersOnly(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/v1/navigation", "", signedInAs(domain.RoleTelemarketingElf))
	_ = NewNavigationHandler().Navigation(c)

	var resp navigationResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Items) != 1 || resp.Items[0].Screen != domain.ScreenCustomers {
		t.Fatalf("unexpected menu: %+v", resp.Items)
	}
}

func TestNavigationHandler_Screen(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/v1/screens/vehicles", "", signedInAs(domain.RoleManager))
	c.SetParamNames("screen")
	c.SetParamValues("vehicles")

	if err := NewNavigationHandler().Screen(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != "vehicles" || resp["role"] != "manager" {
		t.Fatalf("unexpected screen: %v", resp)
	}
}

func TestNavigationHandler_UnknownScreen(t *testing.T) {
	c, _ := newJSONContext(http.MethodGet, "/v1/screens/payroll", "", signedInAs(domain.RoleAdmin))
	c.SetParamNames("screen")
	c.SetParamValues("payroll")

	err := NewNavigationHandler().Screen(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Readiness(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	c, rec := newJSONContext(http.MethodGet, "/health/ready", "", nil)
	h := NewHealthDependenciesHandler(map[string]ports.Pinger{"credential_store": ok, "redis": ok})
	if err := h.Readiness(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", rec.Code, err)
	}

	c, rec = newJSONContext(http.MethodGet, "/health/ready", "", nil)
	h = NewHealthDependenciesHandler(map[string]ports.Pinger{"credential_store": ok, "redis": down})
	_ = h.Readiness(c)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["credential_store"].Status != "ok" {
		t.Fatalf("unexpected dependencies: %+v", resp.Dependencies)
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "", nil)
	if err := NewHealthHandler().Liveness(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
