package rbac

// Decision is the outcome of a single authorization check.
type Decision int

const (
	// Allow grants access.
	Allow Decision = iota

	// DenyNotRequired: the caller's active role is not one of the roles the
	// resource accepts. The caller may hold a matching role among their
	// assigned set; surfacing the required list lets the client offer a
	// role switch.
	DenyNotRequired

	// DenyRoleMismatch: the stored active role is not among the roles
	// actually granted to the user. Data integrity problem (e.g. an admin
	// revoked a role after it was activated); must never degrade to Allow.
	DenyRoleMismatch
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyNotRequired:
		return "deny_not_required"
	case DenyRoleMismatch:
		return "deny_role_mismatch"
	}
	return "unknown"
}

// Allowed is a convenience for the two enforcement mirrors.
func (d Decision) Allowed() bool { return d == Allow }

// Decide evaluates the role policy, in order:
//
//  1. empty required set -> Allow (route needs authentication only)
//  2. active not in required -> DenyNotRequired
//  3. active not in assigned -> DenyRoleMismatch
//  4. otherwise -> Allow
//
// Rule 3 runs on every check, not only at switch time: active_role and
// roles are stored independently, so a stale active role left behind by an
// administrative edit must be caught here.
func Decide(assigned []Role, active Role, required []Role) Decision {
	if len(required) == 0 {
		return Allow
	}
	if !Contains(required, active) {
		return DenyNotRequired
	}
	if !Contains(assigned, active) {
		return DenyRoleMismatch
	}
	return Allow
}

// CanView is the presentation-layer mirror used by the menu filter and the
// dashboard lookups: rules 1-2 only. The server middleware remains the
// trust boundary; a mismatch between active and assigned roles is caught
// there (rule 3) before any data is served.
func CanView(active Role, required []Role) bool {
	if len(required) == 0 {
		return true
	}
	return Contains(required, active)
}
