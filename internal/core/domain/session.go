package domain

import "time"

const (
	// ShortSessionTTL applies when "remember me" is off.
	ShortSessionTTL = 8 * time.Hour
	// LongSessionTTL applies when "remember me" is on.
	LongSessionTTL = 30 * 24 * time.Hour
)

// Identity is the snapshot of Account fields needed for authorization
// decisions. It never carries the password digest.
type Identity struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Role        Role         `json:"role"`
	IsActive    bool         `json:"is_active"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	LastLogin   *time.Time   `json:"last_login,omitempty"`
}

// Session is one authenticated browser context.
type Session struct {
	Identity  Identity
	ExpiresAt time.Time
}

// ValidAt reports whether the session is still usable at now. A session whose
// expiry equals now is already expired.
func (s Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// Grants reports whether the session's permission set allows p.
func (s Session) Grants(p Permission) bool {
	return Grants(s.Identity.Permissions, p)
}

// SessionExpiry computes the absolute expiry for a login at now.
func SessionExpiry(now time.Time, rememberMe bool, short, long time.Duration) time.Time {
	if short <= 0 {
		short = ShortSessionTTL
	}
	if long <= 0 {
		long = LongSessionTTL
	}
	if rememberMe {
		return now.Add(long)
	}
	return now.Add(short)
}

// AuthState is the lifecycle state of a SessionManager.
type AuthState int

const (
	StateUnknown AuthState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
