package ports

import (
	"context"
	"time"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

// SessionStore persists the Session of one browser context. The payload and
// its expiry are written and cleared together.
type SessionStore interface {
	// Load returns domain.ErrSessionNotFound when nothing is stored and
	// domain.ErrCorruptSession when the stored record cannot be decoded.
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

// SessionStoreProvider scopes a SessionStore to a browser context.
type SessionStoreProvider interface {
	ForContext(contextID string) SessionStore
}

// LoginGuard serializes logins within one browser context. Acquire returns
// domain.ErrLoginInFlight when another login holds the guard.
type LoginGuard interface {
	Acquire(ctx context.Context, contextID string) (release func(), err error)
}

// AttemptLimiter bounds failed login attempts per email.
type AttemptLimiter interface {
	// Allow records an attempt and reports whether it is within the limit.
	Allow(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

// LastLoginRecorder records successful logins. Implementations are
// best-effort: errors are logged, never returned to the login caller.
type LastLoginRecorder interface {
	Record(ctx context.Context, accountID string, ts time.Time)
}
