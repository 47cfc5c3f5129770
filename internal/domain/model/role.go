// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Role selects which side of the plate appearance a player is measured from.
type Role string

// Supported roles.
const (
	RoleBatter  Role = "batter"
	RolePitcher Role = "pitcher"
)

// Roles lists every supported role in a stable order.
func Roles() []Role { return []Role{RoleBatter, RolePitcher} }

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	return r == RoleBatter || r == RolePitcher
}

func (r Role) String() string { return string(r) }

// ParseRole converts user input into a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
