package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

func labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func findByLabel(t *testing.T, items []Item, label string) Item {
	t.Helper()
	for _, it := range items {
		if it.Label == label {
			return it
		}
	}
	t.Fatalf("item %q not found in %v", label, labels(items))
	return Item{}
}

func TestVisibleToAdminSeesEverything(t *testing.T) {
	got := VisibleTo(rbac.RoleAdmin)
	assert.Equal(t, []string{
		"Dashboard", "Data Pondok", "Akademik", "Keuangan",
		"Portal Wali", "Audit Log", "Status Sistem", "Pengaturan",
	}, labels(got))
}

func TestVisibleToGuru(t *testing.T) {
	got := VisibleTo(rbac.RoleGuru)
	assert.Equal(t, []string{"Dashboard", "Data Pondok", "Akademik", "Portal Wali"}, labels(got))

	// inside Data Pondok a guru only keeps Halaqoh
	dp := findByLabel(t, got, "Data Pondok")
	assert.Equal(t, []string{"Halaqoh"}, labels(dp.Children))
}

func TestVisibleToWali(t *testing.T) {
	got := VisibleTo(rbac.RoleWali)
	assert.Equal(t, []string{"Portal Wali"}, labels(got))
}

func TestVisibleToBendaharaAndPengasuh(t *testing.T) {
	for _, role := range []rbac.Role{rbac.RoleBendahara, rbac.RolePengasuh} {
		got := VisibleTo(role)
		require.Equal(t, []string{"Keuangan"}, labels(got), "role %s", role)

		keu := findByLabel(t, got, "Keuangan")
		// children carry no roles, so the whole finance tree is visible
		assert.Equal(t, []string{"Alur KAS", "Pembayaran", "Penyaluran Dana"}, labels(keu.Children))
	}
}

func TestFilterKeepsRolelessEntries(t *testing.T) {
	items := []Item{
		{Path: "/open", Label: "Open"},
		{Path: "/admin-only", Label: "Restricted", Roles: []rbac.Role{rbac.RoleAdmin}},
	}
	got := Filter(items, rbac.RoleWali)
	assert.Equal(t, []string{"Open"}, labels(got))
}

func TestFilterDropsEmptyGroupHeaders(t *testing.T) {
	items := []Item{
		{
			Label: "Group",
			Children: []Item{
				{Path: "/a", Label: "A", Roles: []rbac.Role{rbac.RoleAdmin}},
			},
		},
	}
	got := Filter(items, rbac.RoleGuru)
	assert.Empty(t, got)
}

func TestFilterDoesNotMutateRegistry(t *testing.T) {
	before := len(Registry()[1].Children)
	_ = VisibleTo(rbac.RoleGuru)
	assert.Equal(t, before, len(Registry()[1].Children))
}
