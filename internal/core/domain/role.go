package domain

import "strings"

// Role is the closed set of account roles. Each telemarketing role is scoped
// to one vehicle category.
type Role string

const (
	RoleAdmin              Role = "admin"
	RoleManager            Role = "manager"
	RoleTelemarketingMobil Role = "telemarketing-mobil"
	RoleTelemarketingBus   Role = "telemarketing-bus"
	RoleTelemarketingElf   Role = "telemarketing-elf"
	RoleTelemarketingHiace Role = "telemarketing-hiace"
)

const telemarketingPrefix = "telemarketing-"

// Roles lists every role in display order.
var Roles = []Role{
	RoleAdmin,
	RoleManager,
	RoleTelemarketingMobil,
	RoleTelemarketingBus,
	RoleTelemarketingElf,
	RoleTelemarketingHiace,
}

var roleDisplayNames = map[Role]string{
	RoleAdmin:              "Administrator",
	RoleManager:            "Manager",
	RoleTelemarketingMobil: "Telemarketing Mobil",
	RoleTelemarketingBus:   "Telemarketing Bus",
	RoleTelemarketingElf:   "Telemarketing Elf",
	RoleTelemarketingHiace: "Telemarketing Hiace",
}

// ParseRole converts a raw string into a Role. Unknown values are rejected.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleDisplayNames[r]
	return ok
}

// DisplayName returns the human-readable role name. Unknown roles are
// returned verbatim.
func (r Role) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// IsTelemarketing reports whether r is one of the vehicle-scoped
// telemarketing roles.
func (r Role) IsTelemarketing() bool {
	return r.Valid() && strings.HasPrefix(string(r), telemarketingPrefix)
}

// VehicleCategory returns the vehicle category a telemarketing role is scoped
// to ("mobil", "bus", "elf", "hiace"), or "" for other roles.
func (r Role) VehicleCategory() string {
	if !r.IsTelemarketing() {
		return ""
	}
	return strings.TrimPrefix(string(r), telemarketingPrefix)
}

// AccessHint is the short explanation shown next to an access-denied screen.
func (r Role) AccessHint() string {
	switch {
	case r == RoleManager:
		return "Managers can open every menu except User Management."
	case r.IsTelemarketing():
		return "Telemarketing accounts can only open Customers for their vehicle category."
	default:
		return ""
	}
}
