package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

func TestNormalize_LegacyScalarRole(t *testing.T) {
	p := Normalize(&Record{UserID: "u1", Nama: "Ust. Fulan", Role: "guru"})

	require.Equal(t, []rbac.Role{rbac.RoleGuru}, p.Roles)
	require.Equal(t, rbac.RoleGuru, p.ActiveRole)
}

func TestNormalize_LegacyBehavesLikeCanonical(t *testing.T) {
	legacy := Normalize(&Record{UserID: "u1", Role: "guru"})
	canonical := Normalize(&Record{UserID: "u1", Roles: []string{"guru"}, ActiveRole: "guru"})

	required := [][]rbac.Role{
		nil,
		{rbac.RoleGuru},
		{rbac.RoleAdmin},
		{rbac.RoleAdmin, rbac.RoleGuru},
	}
	for _, req := range required {
		require.Equal(t,
			rbac.Decide(canonical.Roles, canonical.ActiveRole, req),
			rbac.Decide(legacy.Roles, legacy.ActiveRole, req),
			"legacy and canonical shapes must decide identically for %v", req)
	}
}

func TestNormalize_ActiveRoleFallsBackToLegacyScalar(t *testing.T) {
	p := Normalize(&Record{UserID: "u1", Roles: []string{"admin", "wali"}, Role: "admin"})
	require.Equal(t, rbac.RoleAdmin, p.ActiveRole)
}

func TestNormalize_DeduplicatesRoles(t *testing.T) {
	p := Normalize(&Record{UserID: "u1", Roles: []string{"admin", "Admin", "wali"}, ActiveRole: "wali"})
	require.Equal(t, []rbac.Role{rbac.RoleAdmin, rbac.RoleWali}, p.Roles)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetByUserID(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SwitchActiveRole(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put(&Record{UserID: "u1", Nama: "Admin Pondok", Roles: []string{"admin", "wali"}, ActiveRole: "admin"})

	p, err := s.SwitchActiveRole(ctx, "u1", rbac.RoleWali)
	require.NoError(t, err)
	require.Equal(t, rbac.RoleWali, p.ActiveRole)

	// Subsequent reads reflect the switch.
	p, err = s.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, rbac.RoleWali, p.ActiveRole)
	require.Equal(t, rbac.Allow, rbac.Decide(p.Roles, p.ActiveRole, []rbac.Role{rbac.RoleWali}))
}

func TestMemoryStore_SwitchRejectsUnassignedRole(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put(&Record{UserID: "u1", Roles: []string{"admin"}, ActiveRole: "admin"})

	_, err := s.SwitchActiveRole(ctx, "u1", rbac.RoleBendahara)
	require.ErrorIs(t, err, ErrRoleNotAssigned)

	// Stored active role unchanged after the failed switch.
	p, err := s.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, rbac.RoleAdmin, p.ActiveRole)
}

func TestMemoryStore_SwitchIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put(&Record{UserID: "u1", Roles: []string{"admin", "wali"}, ActiveRole: "wali"})

	first, err := s.SwitchActiveRole(ctx, "u1", rbac.RoleWali)
	require.NoError(t, err)
	second, err := s.SwitchActiveRole(ctx, "u1", rbac.RoleWali)
	require.NoError(t, err)
	require.Equal(t, first.ActiveRole, second.ActiveRole)
}

func TestMemoryStore_SwitchOnLegacyRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put(&Record{UserID: "u1", Role: "bendahara"})

	// Only the legacy scalar role is assigned.
	_, err := s.SwitchActiveRole(ctx, "u1", rbac.RoleAdmin)
	require.ErrorIs(t, err, ErrRoleNotAssigned)

	p, err := s.SwitchActiveRole(ctx, "u1", rbac.RoleBendahara)
	require.NoError(t, err)
	require.Equal(t, rbac.RoleBendahara, p.ActiveRole)
}

func TestMemoryStore_SwitchMissingProfile(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.SwitchActiveRole(context.Background(), "ghost", rbac.RoleAdmin)
	require.ErrorIs(t, err, ErrNotFound)
}
