package domain

// Screen identifies one protected back-office screen.
type Screen string

const (
	ScreenDashboard   Screen = "dashboard"
	ScreenCustomers   Screen = "customers"
	ScreenVehicles    Screen = "vehicles"
	ScreenInvoices    Screen = "invoices"
	ScreenKIR         Screen = "kir"
	ScreenTax         Screen = "tax"
	ScreenMaintenance Screen = "maintenance"
	ScreenVendors     Screen = "vendors"
	ScreenPricing     Screen = "pricing"
	ScreenHPP         Screen = "hpp"
	ScreenReports     Screen = "reports"
	ScreenUsers       Screen = "users"
)

// MenuItem is one navigation entry and the permission that guards it.
type MenuItem struct {
	Screen     Screen     `json:"id"`
	Name       string     `json:"name"`
	Permission Permission `json:"permission"`
}

// Menu is the full navigation in display order.
var Menu = []MenuItem{
	{Screen: ScreenDashboard, Name: "Dashboard", Permission: PermDashboard},
	{Screen: ScreenCustomers, Name: "Customers", Permission: PermCustomers},
	{Screen: ScreenVehicles, Name: "Vehicles", Permission: PermVehicles},
	{Screen: ScreenInvoices, Name: "Invoices", Permission: PermInvoices},
	{Screen: ScreenKIR, Name: "KIR Management", Permission: PermKIR},
	{Screen: ScreenTax, Name: "Tax Management", Permission: PermTax},
	{Screen: ScreenMaintenance, Name: "Maintenance", Permission: PermMaintenance},
	{Screen: ScreenVendors, Name: "Vendors", Permission: PermVendors},
	{Screen: ScreenPricing, Name: "Price Tracking", Permission: PermPricing},
	{Screen: ScreenHPP, Name: "HPP Calculator", Permission: PermHPP},
	{Screen: ScreenReports, Name: "Reports", Permission: PermReports},
	{Screen: ScreenUsers, Name: "User Management", Permission: PermUsers},
}

// LookupScreen returns the menu entry for s.
func LookupScreen(s string) (MenuItem, bool) {
	for _, item := range Menu {
		if string(item.Screen) == s {
			return item, true
		}
	}
	return MenuItem{}, false
}

// VisibleMenu filters Menu through grants, preserving order.
func VisibleMenu(grants func(Permission) bool) []MenuItem {
	out := make([]MenuItem, 0, len(Menu))
	for _, item := range Menu {
		if grants(item.Permission) {
			out = append(out, item)
		}
	}
	return out
}
