package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

// SessionStores hands out session stores scoped to one browser context.
type SessionStores struct {
	client *redis.Client
}

func NewSessionStores(client *redis.Client) *SessionStores {
	return &SessionStores{client: client}
}

func (p *SessionStores) ForContext(contextID string) ports.SessionStore {
	return &SessionStore{
		client:    p.client,
		userKey:   key(contextID, "user"),
		expiryKey: key(contextID, "session_expiry"),
	}
}

// Ping reports whether Redis answers.
func (p *SessionStores) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// SessionStore keeps the session payload and its expiry under two keys that
// are always written and deleted in the same MULTI/EXEC.
type SessionStore struct {
	client    *redis.Client
	userKey   string
	expiryKey string
}

func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	vals, err := s.client.MGet(ctx, s.userKey, s.expiryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return decodeSession(vals[0], vals[1])
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session.Identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	expiry := session.ExpiresAt.UTC().Format(time.RFC3339Nano)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.userKey, payload, 0)
		pipe.Set(ctx, s.expiryKey, expiry, 0)
		pipe.PExpireAt(ctx, s.userKey, session.ExpiresAt)
		pipe.PExpireAt(ctx, s.expiryKey, session.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.userKey, s.expiryKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// decodeSession turns the two MGET values back into a session. Both missing
// means no session; anything partial or unparseable is corrupt.
func decodeSession(user, expiry interface{}) (*domain.Session, error) {
	if user == nil && expiry == nil {
		return nil, domain.ErrSessionNotFound
	}

	rawUser, okUser := user.(string)
	rawExpiry, okExpiry := expiry.(string)
	if !okUser || !okExpiry {
		return nil, domain.ErrCorruptSession
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, rawExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry: %v", domain.ErrCorruptSession, err)
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", domain.ErrCorruptSession, err)
	}
	if identity.ID == "" {
		return nil, domain.ErrCorruptSession
	}

	return &domain.Session{Identity: identity, ExpiresAt: expiresAt}, nil
}
