package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

type accountService struct {
	repo   ports.AccountRepository
	hasher PasswordHasher
	now    func() time.Time
	log    zerolog.Logger
}

// NewAccountService returns the user management service.
func NewAccountService(repo ports.AccountRepository, hasher PasswordHasher, log zerolog.Logger) ports.AccountService {
	if hasher == nil {
		hasher = NewCompositeHasher()
	}
	return &accountService{repo: repo, hasher: hasher, now: time.Now, log: log}
}

// Create provisions a new active account. Permissions always come from the role.
func (s *accountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.NewValidationError("name, email, password and role are required")
	}
	if !domain.ValidEmail(email) {
		return nil, domain.NewValidationError("email format is invalid")
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("role is not recognised")
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := &domain.Account{
		Name:         name,
		Email:        domain.NormalizeEmail(email),
		PasswordHash: digest,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	account.SetRole(role)

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", created.ID).Str("role", string(role)).Msg("account created")
	return created, nil
}

// Update applies a partial change. A role change recomputes permissions and
// a non-empty password is rehashed; the plaintext is never logged.
func (s *accountService) Update(ctx context.Context, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	changes := domain.AccountChanges{UpdatedAt: s.now().UTC()}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name must not be empty")
		}
		changes.Name = &name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !domain.ValidEmail(email) {
			return nil, domain.NewValidationError("email format is invalid")
		}
		email = domain.NormalizeEmail(email)
		changes.Email = &email
	}
	if in.Role != nil {
		role, ok := domain.ParseRole(*in.Role)
		if !ok {
			return nil, domain.NewValidationError("role is not recognised")
		}
		changes.Role = &role
		changes.Permissions = domain.PermissionsFor(role)
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		if err := checkPassword(*in.Password); err != nil {
			return nil, err
		}
		digest, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		changes.PasswordHash = &digest
	}
	if in.IsActive != nil {
		active := *in.IsActive
		changes.IsActive = &active
	}

	if changes.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", id).
		Bool("role_changed", changes.Role != nil).
		Bool("password_changed", changes.PasswordHash != nil).
		Msg("account updated")
	return updated, nil
}

// ToggleStatus flips the active flag.
func (s *accountService) ToggleStatus(ctx context.Context, id string) (*domain.Account, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	active := !current.IsActive
	return s.Update(ctx, id, ports.UpdateAccountInput{IsActive: &active})
}

func (s *accountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *accountService) List(ctx context.Context, filter ports.ListAccountsFilter) ([]*domain.Account, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.NewValidationError("role is not recognised")
	}
	return s.repo.List(ctx, filter)
}

func (s *accountService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Msg("account deleted")
	return nil
}

func checkPassword(p string) error {
	if len(p) < domain.MinPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters long", domain.MinPasswordLength))
	}
	if len(p) > domain.MaxPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes long", domain.MaxPasswordLength))
	}
	return nil
}
