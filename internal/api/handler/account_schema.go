package handler

import (
	"github.com/rentalinx/backoffice/internal/core/domain"
)

type createAccountRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin manager telemarketing-mobil telemarketing-bus telemarketing-elf telemarketing-hiace"`
}

// updateAccountRequest is a partial update; absent fields are left alone and
// an empty password is ignored.
type updateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"     validate:"omitempty,email"`
	Password *string `json:"password,omitempty"  validate:"omitempty,max=72"`
	Role     *string `json:"role,omitempty"      validate:"omitempty,oneof=admin manager telemarketing-mobil telemarketing-bus telemarketing-elf telemarketing-hiace"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type accountResponse struct {
	*domain.Account
	RoleName string `json:"role_name"`
}

type listAccountsResponse struct {
	Items []accountResponse `json:"items"`
	Total int               `json:"total"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{Account: a, RoleName: a.Role.DisplayName()}
}
