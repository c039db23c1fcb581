package ports

import (
	"context"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

// CreateAccountInput is the DTO for provisioning an account.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateAccountInput is a partial update; nil fields are left untouched.
// An empty Password is ignored.
type UpdateAccountInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	IsActive *bool
}

// AccountService manages back-office accounts.
type AccountService interface {
	Create(ctx context.Context, in CreateAccountInput) (*domain.Account, error)
	Update(ctx context.Context, id string, in UpdateAccountInput) (*domain.Account, error)
	ToggleStatus(ctx context.Context, id string) (*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, error)
	Delete(ctx context.Context, id string) error
}
