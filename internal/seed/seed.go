// Package seed provisions the administrator and one demo account per role.
// Running it again updates existing accounts instead of duplicating them.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

// Account is one fixed account to provision.
type Account struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Admin is the bootstrap administrator.
var Admin = Account{Name: "Administrator Rentalinx", Email: "admin@rentalinx.com", Password: "Admin123!", Role: domain.RoleAdmin}

// Demo holds one account per non-admin role.
var Demo = []Account{
	{Name: "Manager Rentalinx", Email: "manager@rentalinx.com", Password: "password123", Role: domain.RoleManager},
	{Name: "Sari Telemarketing Mobil", Email: "sari.mobil@rentalinx.com", Password: "password123", Role: domain.RoleTelemarketingMobil},
	{Name: "Budi Telemarketing Bus", Email: "budi.bus@rentalinx.com", Password: "password123", Role: domain.RoleTelemarketingBus},
	{Name: "Dewi Telemarketing Elf", Email: "dewi.elf@rentalinx.com", Password: "password123", Role: domain.RoleTelemarketingElf},
	{Name: "Rudi Telemarketing Hiace", Email: "rudi.hiace@rentalinx.com", Password: "password123", Role: domain.RoleTelemarketingHiace},
}

// Action is what Run did, or would do, for one account.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Result reports the outcome for one account.
type Result struct {
	Email  string
	Role   domain.Role
	Action Action
	ID     string
}

type Options struct {
	// DryRun reports the planned actions without writing.
	DryRun bool
	// OnlyAdmin skips the demo accounts.
	OnlyAdmin bool
}

// Seeder writes through the account service so seeded accounts follow the
// same validation and hashing as ones created from the user screen.
type Seeder struct {
	repo     ports.AccountRepository
	accounts ports.AccountService
	log      zerolog.Logger
}

func New(repo ports.AccountRepository, accounts ports.AccountService, log zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, accounts: accounts, log: log}
}

// Plan returns the accounts Run will provision for opts.
func Plan(opts Options) []Account {
	if opts.OnlyAdmin {
		return []Account{Admin}
	}
	return append([]Account{Admin}, Demo...)
}

// Run provisions every planned account. An existing email gets its password
// reset, its role synced and is re-activated.
func (s *Seeder) Run(ctx context.Context, opts Options) ([]Result, error) {
	plan := Plan(opts)
	results := make([]Result, 0, len(plan))

	for _, acc := range plan {
		res, err := s.apply(ctx, acc, opts.DryRun)
		if err != nil {
			return results, fmt.Errorf("seed %s: %w", acc.Email, err)
		}
		s.log.Info().
			Str("email", res.Email).
			Str("role", string(res.Role)).
			Str("action", string(res.Action)).
			Bool("dry_run", opts.DryRun).
			Msg("seed account")
		results = append(results, res)
	}
	return results, nil
}

func (s *Seeder) apply(ctx context.Context, acc Account, dryRun bool) (Result, error) {
	res := Result{Email: domain.NormalizeEmail(acc.Email), Role: acc.Role}

	existing, err := s.repo.FindByEmail(ctx, acc.Email)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		res.Action = ActionCreate
		if dryRun {
			return res, nil
		}
		created, err := s.accounts.Create(ctx, ports.CreateAccountInput{
			Name:     acc.Name,
			Email:    acc.Email,
			Password: acc.Password,
			Role:     string(acc.Role),
		})
		if err != nil {
			return res, err
		}
		res.ID = created.ID
		return res, nil

	case err != nil:
		return res, err
	}

	res.Action = ActionUpdate
	res.ID = existing.ID
	if dryRun {
		return res, nil
	}

	password := acc.Password
	role := string(acc.Role)
	active := true
	if _, err := s.accounts.Update(ctx, existing.ID, ports.UpdateAccountInput{
		Password: &password,
		Role:     &role,
		IsActive: &active,
	}); err != nil {
		return res, err
	}
	return res, nil
}
