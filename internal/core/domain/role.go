package domain

import "strings"

// Role is a member of the closed, ordered set of user roles.
type Role string

const (
	RolePeuple        Role = "peuple"
	RoleConstellation Role = "constellation"
	RoleTornades      Role = "tornades"
	RoleTour          Role = "tour"
	RoleBatview       Role = "batview"
	RoleAdmin         Role = "admin"
	RoleSuperAdmin    Role = "superadmin"
)

// DefaultRole is assigned to every newly registered account.
const DefaultRole = RolePeuple

// roleOrder lists roles from least to most privileged.
var roleOrder = []Role{
	RolePeuple,
	RoleConstellation,
	RoleTornades,
	RoleTour,
	RoleBatview,
	RoleAdmin,
	RoleSuperAdmin,
}

// Roles returns every known role, least privileged first.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// ParseRole validates s against the known roles. Unknown values are rejected
// rather than stored.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r.rank() >= 0
}

// IsPrivileged reports whether r grants administrative access (admin, superadmin).
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin reports whether r is the top tier.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

func (r Role) rank() int {
	for i, known := range roleOrder {
		if r == known {
			return i
		}
	}
	return -1
}

func (r Role) String() string { return string(r) }
