package ports

import (
	"context"
	"time"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

// ListAccountsFilter carries the optional filters of the user management list.
type ListAccountsFilter struct {
	Query string      // optional: case-insensitive partial match on name or email
	Role  domain.Role // optional: exact role match
}

// AccountRepository is the Credential Store. Emails are stored normalized and
// are unique; Insert and Update return domain.ErrEmailExists on conflict
// without mutating anything.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, id string, changes domain.AccountChanges) (*domain.Account, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
