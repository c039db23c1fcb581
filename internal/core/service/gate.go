package service

import (
	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

// GateDecision is the outcome of checking a protected screen.
type GateDecision int

const (
	// GateLoading: the session has not been restored yet; show a loading indicator only.
	GateLoading GateDecision = iota
	// GateHidden: not authenticated; render nothing, the login screen takes over.
	GateHidden
	// GateAllow: render the screen.
	GateAllow
	// GateDenied: authenticated but lacking the permission; render access denied.
	GateDenied
)

func (d GateDecision) String() string {
	switch d {
	case GateLoading:
		return "loading"
	case GateHidden:
		return "hidden"
	case GateAllow:
		return "allow"
	default:
		return "denied"
	}
}

// Decide checks required against auth. An empty required permission admits
// any authenticated user.
func Decide(auth ports.AuthSession, required domain.Permission) GateDecision {
	switch auth.State() {
	case domain.StateUnknown:
		return GateLoading
	case domain.StateUnauthenticated:
		return GateHidden
	}
	if required == "" || auth.HasPermission(required) {
		return GateAllow
	}
	return GateDenied
}

// Navigation returns the menu entries the current session may open. It uses
// the same permission check as Decide, so a visible entry is never denied.
func Navigation(auth ports.AuthSession) []domain.MenuItem {
	if auth.State() != domain.StateAuthenticated {
		return []domain.MenuItem{}
	}
	return domain.VisibleMenu(auth.HasPermission)
}
