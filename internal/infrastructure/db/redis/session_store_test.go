package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

func TestDecodeSession(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	payload := `{"id":"acc-1","name":"Admin","email":"admin@rentalinx.com","role":"admin","is_active":true,"permissions":["all"],"created_at":"2025-01-01T00:00:00Z"}`

	s, err := decodeSession(payload, expiry.Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Identity.ID != "acc-1" || s.Identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", s.Identity)
	}
	if !s.ExpiresAt.Equal(expiry) {
		t.Fatalf("expected %s, got %s", expiry, s.ExpiresAt)
	}
}

func TestDecodeSession_Missing(t *testing.T) {
	if _, err := decodeSession(nil, nil); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDecodeSession_Corrupt(t *testing.T) {
	valid := `{"id":"acc-1","role":"admin"}`
	expiry := time.Now().Format(time.RFC3339Nano)

	cases := []struct {
		name   string
		user   interface{}
		expiry interface{}
	}{
		{"payload without expiry", valid, nil},
		{"expiry without payload", nil, expiry},
		{"unparseable expiry", valid, "tomorrow"},
		{"unparseable payload", "{not json", expiry},
		{"payload without id", `{"role":"admin"}`, expiry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeSession(tc.user, tc.expiry)
			if !errors.Is(err, domain.ErrCorruptSession) {
				t.Fatalf("expected corrupt session, got %v", err)
			}
		})
	}
}

func sampleSession(expiresAt time.Time) domain.Session {
	return domain.Session{
		Identity: domain.Identity{
			ID:          "acc-1",
			Name:        "Manager Rentalinx",
			Email:       "manager@rentalinx.com",
			Role:        domain.RoleManager,
			IsActive:    true,
			Permissions: domain.PermissionsFor(domain.RoleManager),
		},
		ExpiresAt: expiresAt,
	}
}

func TestSessionStore_SaveLoad(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStores(client).ForContext("ctx-1")
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Millisecond)
	if err := store.Save(ctx, sampleSession(expires)); err != nil {
		t.Fatalf("save: %v", err)
	}

	for _, k := range []string{"rentalinx:ctx-1:user", "rentalinx:ctx-1:session_expiry"} {
		if !mr.Exists(k) {
			t.Fatalf("expected key %s", k)
		}
		if ttl := mr.TTL(k); ttl <= 59*time.Minute || ttl > time.Hour {
			t.Fatalf("%s: expected ttl close to one hour, got %s", k, ttl)
		}
	}
	raw, _ := mr.Get("rentalinx:ctx-1:session_expiry")
	if raw != expires.Format(time.RFC3339Nano) {
		t.Fatalf("unexpected stored expiry %q", raw)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Identity.ID != "acc-1" || got.Identity.Role != domain.RoleManager || !got.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionStore_ClearRemovesBothKeys(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStores(client).ForContext("ctx-1")
	ctx := context.Background()

	if err := store.Save(ctx, sampleSession(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists("rentalinx:ctx-1:user") || mr.Exists("rentalinx:ctx-1:session_expiry") {
		t.Fatalf("persisted keys must be gone, have %v", mr.Keys())
	}
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSessionStore_ContextsAreIsolated(t *testing.T) {
	_, client := newTestRedis(t)
	stores := NewSessionStores(client)
	ctx := context.Background()

	if err := stores.ForContext("ctx-a").Save(ctx, sampleSession(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := stores.ForContext("ctx-b").Load(ctx); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := stores.ForContext("ctx-b").Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := stores.ForContext("ctx-a").Load(ctx); err != nil {
		t.Fatalf("other context must keep its session: %v", err)
	}
}

func TestSessionStore_PartialRecordIsCorrupt(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStores(client).ForContext("ctx-1")
	ctx := context.Background()

	if err := store.Save(ctx, sampleSession(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.Del("rentalinx:ctx-1:session_expiry")

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrCorruptSession) {
		t.Fatalf("expected ErrCorruptSession, got %v", err)
	}
}

func TestSessionStore_KeysExpireWithSession(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStores(client).ForContext("ctx-1")
	ctx := context.Background()

	if err := store.Save(ctx, sampleSession(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(time.Hour + time.Second)

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStores_Ping(t *testing.T) {
	mr, client := newTestRedis(t)
	stores := NewSessionStores(client)

	if err := stores.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mr.Close()
	if err := stores.Ping(context.Background()); err == nil {
		t.Fatal("expected ping failure once redis is gone")
	}
}
