package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"MONGO_URI":  "mongodb://localhost:27017",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo || cfg.Mongo.Database != "rentalinx" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Session.ShortTTL != 8*time.Hour || cfg.Session.LongTTL != 720*time.Hour {
		t.Errorf("unexpected session TTLs: %+v", cfg.Session)
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.AttemptWindow != 15*time.Minute || cfg.Login.LastLoginWorkers != 4 {
		t.Errorf("unexpected login settings: %+v", cfg.Login)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"MONGO_URI": "mongodb://localhost:27017",
	}))
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_MissingEndpoint(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"mongo", map[string]string{"JWT_SECRET": "x"}, "MONGO_URI"},
		{"postgres", map[string]string{"JWT_SECRET": "x", "STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"JWT_SECRET": "x", "STORE_DRIVER": "sqlite"}, "unsupported"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tc.env))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_Postgres(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "x",
		"STORE_DRIVER": "Postgres",
		"DATABASE_URL": "postgres://localhost/rentalinx",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != DriverPostgres {
		t.Fatalf("expected normalized driver, got %s", cfg.StoreDriver)
	}
}

func TestLoad_PanicsOnError(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGO_URI", "")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Load()
}
