package domain

// Permission is a feature-area tag. The set is closed: callers use the
// constants below, and raw strings from the wire go through ParsePermission.
type Permission string

const (
	PermAll         Permission = "all"
	PermDashboard   Permission = "dashboard"
	PermCustomers   Permission = "customers"
	PermVehicles    Permission = "vehicles"
	PermReports     Permission = "reports"
	PermMaintenance Permission = "maintenance"
	PermVendors     Permission = "vendors"
	PermKIR         Permission = "kir"
	PermTax         Permission = "tax"
	PermPricing     Permission = "pricing"
	PermHPP         Permission = "hpp"
	PermInvoices    Permission = "invoices"
	PermUsers       Permission = "users"
)

// FeaturePermissions is the fixed vocabulary of feature areas (PermAll excluded).
var FeaturePermissions = []Permission{
	PermDashboard,
	PermCustomers,
	PermVehicles,
	PermReports,
	PermMaintenance,
	PermVendors,
	PermKIR,
	PermTax,
	PermPricing,
	PermHPP,
	PermInvoices,
	PermUsers,
}

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {PermAll},
	RoleManager: {
		PermDashboard, PermCustomers, PermVehicles, PermReports, PermMaintenance,
		PermVendors, PermKIR, PermTax, PermPricing, PermHPP, PermInvoices,
	},
	RoleTelemarketingMobil: {PermCustomers},
	RoleTelemarketingBus:   {PermCustomers},
	RoleTelemarketingElf:   {PermCustomers},
	RoleTelemarketingHiace: {PermCustomers},
}

// PermissionsFor returns the permission set of role. Unknown roles get an
// empty set. The returned slice is a fresh copy.
func PermissionsFor(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// ParsePermission converts a raw tag into a Permission.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(s)
	if p == PermAll {
		return p, true
	}
	for _, known := range FeaturePermissions {
		if known == p {
			return p, true
		}
	}
	return "", false
}

// Grants reports whether perms allows access to p. The PermAll sentinel
// grants every tag.
func Grants(perms []Permission, p Permission) bool {
	for _, have := range perms {
		if have == PermAll || have == p {
			return true
		}
	}
	return false
}
