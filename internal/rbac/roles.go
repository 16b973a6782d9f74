// Package rbac implements the role policy shared by every enforcement point:
// the HTTP access middleware, the role-switch endpoint and the menu filter.
// It is deliberately dependency-free so both the server boundary and the
// presentation mirrors evaluate exactly the same rules.
package rbac

import "strings"

// Role is a role tag as stored in user_profiles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleGuru      Role = "guru"
	RoleBendahara Role = "bendahara"
	RoleWali      Role = "wali"

	// RolePengasuh is legacy. It shares the finance grants of bendahara but
	// remains its own tag value: profiles carrying it are NOT rewritten to
	// bendahara (aliasing would silently shift permissions; see DESIGN.md).
	RolePengasuh Role = "pengasuh"
)

// AllRoles lists every known role tag, legacy included.
var AllRoles = []Role{RoleAdmin, RoleGuru, RoleBendahara, RoleWali, RolePengasuh}

// Known reports whether tag is one of the recognized role tags.
func Known(tag Role) bool {
	for _, r := range AllRoles {
		if r == tag {
			return true
		}
	}
	return false
}

// Normalize trims and lowercases a raw tag.
func Normalize(tag string) Role {
	return Role(strings.ToLower(strings.TrimSpace(tag)))
}

// Contains reports whether tag is an element of roles.
func Contains(roles []Role, tag Role) bool {
	for _, r := range roles {
		if r == tag {
			return true
		}
	}
	return false
}

// Strings converts a role slice to its wire representation.
func Strings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// FromStrings converts raw tags to roles, normalizing and dropping empties.
// Duplicates are removed preserving first occurrence (assigned roles have
// set semantics).
func FromStrings(raw []string) []Role {
	seen := make(map[Role]struct{}, len(raw))
	out := make([]Role, 0, len(raw))
	for _, s := range raw {
		r := Normalize(s)
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
