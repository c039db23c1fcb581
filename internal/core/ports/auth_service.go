package ports

import (
	"context"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

// AuthSession is the per-context authentication state consumed by the
// transport layer and the permission gate.
type AuthSession interface {
	ContextID() string
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string, rememberMe bool) (*domain.Session, error)
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	State() domain.AuthState
	Current() (domain.Session, bool)
	HasPermission(p domain.Permission) bool
}

// AuthSessionFactory builds an AuthSession bound to one browser context.
type AuthSessionFactory interface {
	ForContext(contextID string) AuthSession
}
