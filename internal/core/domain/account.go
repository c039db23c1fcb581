package domain

import (
	"regexp"
	"strings"
	"time"
)

// MinPasswordLength is the shortest plaintext accepted when provisioning or
// changing a password.
const MinPasswordLength = 6

// MaxPasswordLength is the longest plaintext bcrypt can digest, in bytes.
const MaxPasswordLength = 72

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Account models a back-office user.
type Account struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	IsActive     bool         `json:"is_active"`
	Permissions  []Permission `json:"permissions"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLogin    *time.Time   `json:"last_login,omitempty"`
}

// SetRole assigns role and recomputes the permission set from it.
func (a *Account) SetRole(role Role) {
	a.Role = role
	a.Permissions = PermissionsFor(role)
}

// Snapshot returns the identity fields carried by a Session.
func (a *Account) Snapshot() Identity {
	id := Identity{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		IsActive:    a.IsActive,
		Permissions: PermissionsFor(a.Role),
		CreatedAt:   a.CreatedAt,
	}
	if a.LastLogin != nil {
		t := *a.LastLogin
		id.LastLogin = &t
	}
	return id
}

// AccountChanges is a partial update. Nil fields are left untouched.
// Permissions must be set whenever Role is set.
type AccountChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
	Permissions  []Permission
	IsActive     *bool
	UpdatedAt    time.Time
}

// Empty reports whether the change set carries no field updates.
func (c AccountChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.PasswordHash == nil && c.Role == nil && c.IsActive == nil
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail applies the basic local@domain.tld shape check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
