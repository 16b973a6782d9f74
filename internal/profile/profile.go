// Package profile owns the user profile record: the mapping from an
// external identity to assigned roles, an active role and a display name.
package profile

import (
	"context"
	"errors"
	"time"

	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

var (
	// ErrNotFound: no profile row exists for the identity.
	ErrNotFound = errors.New("profile: not found")

	// ErrRoleNotAssigned: a role switch requested a role outside the
	// caller's assigned set.
	ErrRoleNotAssigned = errors.New("profile: role not assigned")
)

// Record is the raw storage shape. Legacy rows carry a single scalar Role
// with empty Roles/ActiveRole; never consume a Record directly, always go
// through Normalize.
type Record struct {
	UserID     string
	Nama       string
	Roles      []string // nil on legacy rows
	ActiveRole string   // empty on legacy rows
	Role       string   // legacy scalar, kept for old rows
	UpdatedAt  time.Time
}

// Profile is the canonical in-memory shape. Produced once at the read
// boundary; all policy checks and responses work from this.
type Profile struct {
	UserID     string
	Nama       string
	Roles      []rbac.Role
	ActiveRole rbac.Role
	UpdatedAt  time.Time
}

// HasRole reports whether tag is among the assigned roles.
func (p *Profile) HasRole(tag rbac.Role) bool {
	return rbac.Contains(p.Roles, tag)
}

// Normalize folds the legacy scalar-role format into the canonical shape:
// an absent roles array becomes the singleton {role}, and an absent active
// role falls back to the legacy scalar. This is the only place the
// fallback lives.
func Normalize(r *Record) *Profile {
	roles := rbac.FromStrings(r.Roles)
	if len(roles) == 0 && r.Role != "" {
		roles = []rbac.Role{rbac.Normalize(r.Role)}
	}

	active := rbac.Normalize(r.ActiveRole)
	if active == "" {
		active = rbac.Normalize(r.Role)
	}

	return &Profile{
		UserID:     r.UserID,
		Nama:       r.Nama,
		Roles:      roles,
		ActiveRole: active,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Store is the persistence boundary for profiles.
//
// Every authorization decision re-reads the profile: role assignment can
// change between requests and a stale ALLOW is a security defect, so
// implementations must not cache reads.
type Store interface {
	// GetByUserID returns the normalized profile. ErrNotFound when no row
	// exists for the identity.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)

	// SwitchActiveRole persists activeRole = newRole after validating the
	// role against a fresh snapshot of the assigned set, atomically with
	// respect to the read-validate-write sequence for this user. Returns
	// ErrNotFound or ErrRoleNotAssigned; on success the updated profile.
	SwitchActiveRole(ctx context.Context, userID string, newRole rbac.Role) (*Profile, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
