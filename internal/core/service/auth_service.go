package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

// AuthDeps groups the collaborators shared by every SessionManager.
// Guard and Limiter are optional.
type AuthDeps struct {
	Accounts  ports.AccountRepository
	Sessions  ports.SessionStoreProvider
	Hasher    PasswordHasher
	LastLogin ports.LastLoginRecorder
	Guard     ports.LoginGuard
	Limiter   ports.AttemptLimiter

	ShortTTL time.Duration
	LongTTL  time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// AuthFactory builds SessionManagers bound to a browser context.
type AuthFactory struct {
	deps AuthDeps
	log  zerolog.Logger
}

func NewAuthFactory(deps AuthDeps, log zerolog.Logger) *AuthFactory {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Hasher == nil {
		deps.Hasher = NewCompositeHasher()
	}
	return &AuthFactory{deps: deps, log: log}
}

// ForContext returns a fresh SessionManager in the Unknown state. Call
// Initialize before reading its state.
func (f *AuthFactory) ForContext(contextID string) ports.AuthSession {
	return &SessionManager{
		deps:      &f.deps,
		contextID: contextID,
		store:     f.deps.Sessions.ForContext(contextID),
		log:       f.log.With().Str("context_id", contextID).Logger(),
	}
}

// SessionManager owns the authentication state of one browser context:
// Unknown -> Unauthenticated <-> Authenticated.
type SessionManager struct {
	deps      *AuthDeps
	contextID string
	store     ports.SessionStore
	log       zerolog.Logger

	mu      sync.RWMutex
	state   domain.AuthState
	session domain.Session

	// loginInFlight rejects overlapping Login calls on this manager only.
	// The factory builds a manager per request, so logins arriving on
	// separate requests for one context are serialized by deps.Guard.
	loginInFlight atomic.Bool
}

func (m *SessionManager) ContextID() string { return m.contextID }

// Initialize restores the persisted session. It runs once; any storage or
// decode failure is treated as "no session" and the record is cleared.
func (m *SessionManager) Initialize(ctx context.Context) {
	m.mu.RLock()
	done := m.state != domain.StateUnknown
	m.mu.RUnlock()
	if done {
		return
	}

	s, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		m.setUnauthenticated()
	case err != nil:
		m.log.Warn().Err(err).Msg("failed to restore session, clearing storage")
		m.clearQuietly(ctx)
		m.setUnauthenticated()
	case !s.ValidAt(m.deps.Now()):
		m.log.Debug().Time("expired_at", s.ExpiresAt).Msg("session expired, clearing storage")
		m.clearQuietly(ctx)
		m.setUnauthenticated()
	default:
		s.Identity.Permissions = domain.PermissionsFor(s.Identity.Role)
		m.setAuthenticated(*s)
	}
}

// Login verifies credentials and, on success, persists a new session before
// exposing the Authenticated state. Failures are always one of the domain
// errors; backing-store problems surface as domain.ErrSystem.
func (m *SessionManager) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.Session, error) {
	if !m.loginInFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrLoginInFlight
	}
	defer m.loginInFlight.Store(false)

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}
	if !domain.ValidEmail(strings.TrimSpace(email)) {
		return nil, domain.NewValidationError("email format is invalid")
	}
	email = domain.NormalizeEmail(email)

	if m.deps.Guard != nil {
		release, err := m.deps.Guard.Acquire(ctx, m.contextID)
		if err != nil {
			if errors.Is(err, domain.ErrLoginInFlight) {
				return nil, err
			}
			m.log.Error().Err(err).Msg("login guard unavailable")
			return nil, domain.ErrSystem
		}
		defer release()
	}

	if m.deps.Limiter != nil {
		allowed, err := m.deps.Limiter.Allow(ctx, email)
		if err != nil {
			m.log.Warn().Err(err).Msg("attempt limiter failed, continuing")
		} else if !allowed {
			m.log.Warn().Msg("login rate limited")
			return nil, domain.ErrTooManyAttempts
		}
	}

	account, err := m.deps.Accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			m.log.Info().Str("result", "unknown_email").Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		m.log.Error().Err(err).Msg("credential lookup failed")
		return nil, domain.ErrSystem
	}

	if !account.IsActive {
		m.log.Info().Str("account_id", account.ID).Str("result", "disabled").Msg("login rejected")
		return nil, domain.ErrAccountDisabled
	}

	if !m.deps.Hasher.Verify(password, account.PasswordHash) {
		m.log.Info().Str("account_id", account.ID).Str("result", "bad_password").Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	now := m.deps.Now().UTC()
	account.LastLogin = &now
	session := domain.Session{
		Identity:  account.Snapshot(),
		ExpiresAt: domain.SessionExpiry(now, rememberMe, m.deps.ShortTTL, m.deps.LongTTL),
	}

	if err := m.store.Save(ctx, session); err != nil {
		m.log.Error().Err(err).Str("account_id", account.ID).Msg("failed to persist session")
		return nil, domain.ErrSystem
	}

	if m.deps.LastLogin != nil {
		m.deps.LastLogin.Record(ctx, account.ID, now)
	}
	m.upgradeDigest(ctx, account, password, now)
	if m.deps.Limiter != nil {
		if err := m.deps.Limiter.Reset(ctx, email); err != nil {
			m.log.Warn().Err(err).Msg("failed to reset attempt counter")
		}
	}

	m.setAuthenticated(session)

	m.log.Info().
		Str("account_id", account.ID).
		Str("role", string(account.Role)).
		Bool("remember_me", rememberMe).
		Time("expires_at", session.ExpiresAt).
		Msg("login succeeded")

	out := session
	return &out, nil
}

// Logout clears the persisted session and always leaves the manager
// Unauthenticated. Calling it repeatedly is safe.
func (m *SessionManager) Logout(ctx context.Context) error {
	err := m.store.Clear(ctx)
	m.setUnauthenticated()
	if err != nil {
		m.log.Error().Err(err).Msg("failed to clear session")
		return domain.ErrSystem
	}
	return nil
}

// ResetPassword accepts a reset request. It reports success whether or not
// the account exists.
func (m *SessionManager) ResetPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.NewValidationError("email is required")
	}
	if !domain.ValidEmail(email) {
		return domain.NewValidationError("email format is invalid")
	}

	account, err := m.deps.Accounts.FindByEmail(ctx, domain.NormalizeEmail(email))
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return nil
	case err != nil:
		m.log.Error().Err(err).Msg("password reset lookup failed")
		return domain.ErrSystem
	}

	m.log.Info().Str("account_id", account.ID).Msg("password reset requested")
	return nil
}

func (m *SessionManager) State() domain.AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns the active session, if any.
func (m *SessionManager) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != domain.StateAuthenticated {
		return domain.Session{}, false
	}
	return m.session, true
}

func (m *SessionManager) HasPermission(p domain.Permission) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != domain.StateAuthenticated {
		return false
	}
	return m.session.Grants(p)
}

func (m *SessionManager) setAuthenticated(s domain.Session) {
	m.mu.Lock()
	m.state = domain.StateAuthenticated
	m.session = s
	m.mu.Unlock()
}

func (m *SessionManager) setUnauthenticated() {
	m.mu.Lock()
	m.state = domain.StateUnauthenticated
	m.session = domain.Session{}
	m.mu.Unlock()
}

func (m *SessionManager) clearQuietly(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session storage")
	}
}

// upgradeDigest replaces a legacy or weak digest after a verified login.
func (m *SessionManager) upgradeDigest(ctx context.Context, account *domain.Account, password string, now time.Time) {
	if !m.deps.Hasher.NeedsRehash(account.PasswordHash) {
		return
	}
	digest, err := m.deps.Hasher.Hash(password)
	if err != nil {
		m.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to rehash password")
		return
	}
	if _, err := m.deps.Accounts.Update(ctx, account.ID, domain.AccountChanges{PasswordHash: &digest, UpdatedAt: now}); err != nil {
		m.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to store upgraded digest")
		return
	}
	m.log.Info().Str("account_id", account.ID).Msg("password digest upgraded")
}
