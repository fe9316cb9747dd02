package domain

// Role is the functional persona governing which dashboard and data subset a
// session sees. Selected before authentication, so it is persisted in the
// preference store independently of any Identity.
type Role string

const (
	RoleFarmer Role = "FARMER"
	RoleBuyer  Role = "BUYER"
	RoleDriver Role = "DRIVER"
	RoleTrader Role = "TRADER"
	RoleNone   Role = "NONE"
)

// ParseRole maps a stored string to a Role, falling back to RoleNone.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleFarmer, RoleBuyer, RoleDriver, RoleTrader:
		return Role(s)
	default:
		return RoleNone
	}
}

func (r Role) String() string { return string(r) }
