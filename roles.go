package truegate

// UserRole is the user's portal role
type UserRole = string

const (
	// RoleUser is a regular account (user dashboard only)
	RoleUser UserRole = "user"
	// RoleAdmin is an administrator (user + admin dashboards)
	RoleAdmin UserRole = "admin"
)

// ParseRole validates a raw role string against the known portal roles.
func ParseRole(raw string) (UserRole, bool) {
	switch raw {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(role UserRole) bool {
	_, ok := ParseRole(role)
	return ok
}

// AllRoles returns the predefined roles in ascending privilege order
func AllRoles() []UserRole {
	return []UserRole{RoleUser, RoleAdmin}
}
