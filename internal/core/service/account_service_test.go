package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

func newAccountSvc(repo *stubAccountRepo) ports.AccountService {
	return NewAccountService(repo, testHasher, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestAccountService_Create_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)

	acc, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Name:     "Sari",
		Email:    "Sari.Mobil@Rentalinx.com",
		Password: "password123",
		Role:     "telemarketing-mobil",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if acc.Email != "sari.mobil@rentalinx.com" {
		t.Errorf("expected normalized email, got %s", acc.Email)
	}
	if !acc.IsActive {
		t.Errorf("new accounts are active")
	}
	if acc.PasswordHash == "password123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored digest does not verify: %v", err)
	}
	if len(acc.Permissions) != 1 || acc.Permissions[0] != domain.PermCustomers {
		t.Errorf("unexpected permissions: %v", acc.Permissions)
	}
}

func TestAccountService_Create_Validation(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	cases := []ports.CreateAccountInput{
		{Email: "a@b.co", Password: "password123", Role: "admin"},
		{Name: "A", Email: "bad-email", Password: "password123", Role: "admin"},
		{Name: "A", Email: "a@b.co", Password: "12345", Role: "admin"},
		{Name: "A", Email: "a@b.co", Password: "password123", Role: "superuser"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestAccountService_PasswordTooLongForBcrypt(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	long := strings.Repeat("x", domain.MaxPasswordLength+8)

	_, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Sari", Email: "sari@rentalinx.com", Password: long, Role: "telemarketing-mobil",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing may be stored")
	}

	acc, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Sari", Email: "sari@rentalinx.com", Password: strings.Repeat("x", domain.MaxPasswordLength), Role: "telemarketing-mobil",
	})
	if err != nil {
		t.Fatalf("72-byte password must be accepted: %v", err)
	}

	if _, err := svc.Update(context.Background(), acc.ID, ports.UpdateAccountInput{Password: &long}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error on update, got %v", err)
	}
}

func TestAccountService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)

	first, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Manager", Email: "manager@rentalinx.com", Password: "password123", Role: "manager",
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	before := *repo.byID[first.ID]

	_, err = svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Impostor", Email: "MANAGER@rentalinx.com", Password: "password456", Role: "admin",
	})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected no new account, got %d", len(repo.byID))
	}
	after := repo.byID[first.ID]
	if after.Name != before.Name || after.Role != before.Role || after.PasswordHash != before.PasswordHash {
		t.Fatalf("existing account was mutated")
	}
}

func TestAccountService_Update_RoleRecomputesPermissions(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	acc, _ := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Budi", Email: "budi.bus@rentalinx.com", Password: "password123", Role: "telemarketing-bus",
	})

	updated, err := svc.Update(context.Background(), acc.ID, ports.UpdateAccountInput{Role: strPtr("manager")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Role != domain.RoleManager {
		t.Fatalf("role not updated")
	}
	if !domain.Grants(updated.Permissions, domain.PermVendors) || domain.Grants(updated.Permissions, domain.PermUsers) {
		t.Fatalf("permissions not recomputed: %v", updated.Permissions)
	}
}

func TestAccountService_Update_Password(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	acc, _ := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Admin", Email: "admin@rentalinx.com", Password: "Admin123!", Role: "admin",
	})
	oldDigest := repo.byID[acc.ID].PasswordHash

	if _, err := svc.Update(context.Background(), acc.ID, ports.UpdateAccountInput{Password: strPtr("   ")}); err != nil {
		t.Fatalf("blank password update: %v", err)
	}
	if repo.byID[acc.ID].PasswordHash != oldDigest {
		t.Fatalf("blank password must be ignored")
	}

	if _, err := svc.Update(context.Background(), acc.ID, ports.UpdateAccountInput{Password: strPtr("abc")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	if _, err := svc.Update(context.Background(), acc.ID, ports.UpdateAccountInput{Password: strPtr("NewPass456")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.byID[acc.ID].PasswordHash), []byte("NewPass456")); err != nil {
		t.Fatalf("new password does not verify")
	}
}

func TestAccountService_Update_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	_, _ = svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Admin", Email: "admin@rentalinx.com", Password: "Admin123!", Role: "admin",
	})
	other, _ := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Manager", Email: "manager@rentalinx.com", Password: "password123", Role: "manager",
	})

	_, err := svc.Update(context.Background(), other.ID, ports.UpdateAccountInput{
		Name:  strPtr("Renamed"),
		Email: strPtr("Admin@rentalinx.com"),
	})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if repo.byID[other.ID].Name != "Manager" {
		t.Fatalf("partial mutation on conflict")
	}
}

func TestAccountService_Update_NotFound(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	_, err := svc.Update(context.Background(), "missing", ports.UpdateAccountInput{Name: strPtr("x")})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_ToggleStatus(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	acc, _ := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "Elf", Email: "elf@rentalinx.com", Password: "password123", Role: "telemarketing-elf",
	})

	toggled, err := svc.ToggleStatus(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("expected inactive")
	}

	toggled, _ = svc.ToggleStatus(context.Background(), acc.ID)
	if !toggled.IsActive {
		t.Fatalf("expected active again")
	}
}

func TestAccountService_ListAndDelete(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)
	_, _ = svc.Create(context.Background(), ports.CreateAccountInput{Name: "Sari", Email: "sari@rentalinx.com", Password: "password123", Role: "telemarketing-mobil"})
	budi, _ := svc.Create(context.Background(), ports.CreateAccountInput{Name: "Budi", Email: "budi@rentalinx.com", Password: "password123", Role: "telemarketing-bus"})

	list, err := svc.List(context.Background(), ports.ListAccountsFilter{Role: domain.RoleTelemarketingBus})
	if err != nil || len(list) != 1 || list[0].ID != budi.ID {
		t.Fatalf("unexpected role filter result: %v %v", list, err)
	}

	list, _ = svc.List(context.Background(), ports.ListAccountsFilter{Query: "  sari "})
	if len(list) != 1 {
		t.Fatalf("expected one search hit, got %d", len(list))
	}

	if _, err := svc.List(context.Background(), ports.ListAccountsFilter{Role: "intern"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}

	if err := svc.Delete(context.Background(), budi.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), budi.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
