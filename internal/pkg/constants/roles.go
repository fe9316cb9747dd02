package constants

const (
	Farmer = "FARMER"
	Buyer  = "BUYER"
	Driver = "DRIVER"
	Trader = "TRADER"
	None   = "NONE"
)

// ValidRoles is the set of personas a session may authenticate as. None is a
// preference-store default, not a loginable role.
var ValidRoles = []string{Farmer, Buyer, Driver, Trader}

// IsValidRole returns true if role is one of the loginable personas.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
