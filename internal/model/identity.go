package model

// Role is the closed set of roles a session can carry.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"

	// RoleUnknown stands for a missing or unrecognised role marker. It is
	// never granted admin access.
	RoleUnknown Role = ""
)

// ParseRole maps a stored role value onto the closed Role set. Anything other
// than the two literal role names yields RoleUnknown.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return RoleUnknown
	}
}

// IsAdmin reports whether r is exactly RoleAdmin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}

// Identity is a resolved staff member.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
}
