// Package routing decides which screen a session lands on. Route is a pure
// function of the session and preference inputs; callers re-evaluate it every
// time the logged-in identity or selected role changes.
package routing

import "mandi-core/internal/domain"

// Screen enumerates the destinations the core can route to.
type Screen string

const (
	ScreenLanguageSelection   Screen = "language_selection"
	ScreenRoleSelection       Screen = "role_selection"
	ScreenFarmerDashboard     Screen = "farmer_dashboard"
	ScreenBuyerDashboard      Screen = "buyer_dashboard"
	ScreenDriverDashboard     Screen = "driver_dashboard"
	ScreenTraderDashboard     Screen = "trader_dashboard"
)

// Route maps (identity, role, seenLanguagePicker) to a screen, in priority
// order: no identity always lands on language selection; an authenticated
// identity lands on its role's dashboard; anything else falls back to
// language selection. seenLanguagePicker is part of the reactive input set
// but the observed routing table never consults it.
func Route(identity *domain.Identity, role domain.Role, seenLanguagePicker bool) Screen {
	switch {
	case identity == nil:
		return ScreenLanguageSelection
	case role == domain.RoleFarmer:
		return ScreenFarmerDashboard
	case role == domain.RoleBuyer:
		return ScreenBuyerDashboard
	case role == domain.RoleDriver:
		return ScreenDriverDashboard
	case role == domain.RoleTrader:
		return ScreenTraderDashboard
	default:
		return ScreenLanguageSelection
	}
}
