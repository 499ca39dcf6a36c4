package authorization

// UserRole identifies which team a user belongs to.
type UserRole string

const (
	RoleGrowth UserRole = "growth"
	RoleOps    UserRole = "ops"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsGrowth() bool {
	return r == RoleGrowth
}

func (r UserRole) IsOps() bool {
	return r == RoleOps
}

func (r UserRole) IsValid() bool {
	return r == RoleGrowth || r == RoleOps || r == RoleAdmin
}

// ParseUserRole returns the role for s, defaulting to growth for anything
// unrecognized.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleGrowth
}

// PeerRole returns the opposite team for the growth/ops pair. Admin has no
// peer and maps to ops, the team responsible for operational review.
func (r UserRole) PeerRole() UserRole {
	switch r {
	case RoleGrowth:
		return RoleOps
	case RoleOps:
		return RoleGrowth
	default:
		return RoleOps
	}
}
