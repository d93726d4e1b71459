package ownership

import (
	"fmt"
	"strings"
)

// Role is the privilege tier of an actor.
type Role int

const (
	// RoleUnknown is the zero value and is never granted anything.
	RoleUnknown Role = iota
	// RoleMember is an ordinary registered user.
	RoleMember
	// RoleStaff bypasses the grace window.
	RoleStaff
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleStaff:
		return "staff"
	default:
		return "unknown"
	}
}

// ParseRole converts a stored or token class name into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "member":
		return RoleMember, nil
	case "staff":
		return RoleStaff, nil
	default:
		return RoleUnknown, fmt.Errorf("ownership: unknown role %q", s)
	}
}

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   int64
	Role Role
}
