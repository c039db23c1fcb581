package db

import (
	"context"
	"testing"

	"github.com/rentalinx/backoffice/internal/pkg/config"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, closeFn, err := Open(context.Background(), &config.Config{StoreDriver: "sqlite"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if closeFn != nil {
		t.Fatal("no close func expected on failure")
	}
}
