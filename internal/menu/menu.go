// Package menu holds the sidebar registry and its role-based filter. The
// filter is a presentation convenience: the HTTP middlewares remain the
// enforcement boundary for every path listed here.
package menu

import "github.com/pondokdigital/pesantren-api/internal/rbac"

// Item is one sidebar entry. An empty Roles slice means the entry is
// visible to any authenticated session. Entries without a Path act as
// group headers for their children.
type Item struct {
	Path     string      `json:"path,omitempty"`
	Icon     string      `json:"icon,omitempty"`
	Label    string      `json:"label"`
	Roles    []rbac.Role `json:"roles,omitempty"`
	Children []Item      `json:"children,omitempty"`
}

// Registry returns the full sidebar tree, before any role filtering.
func Registry() []Item {
	return []Item{
		{Path: "/", Icon: "layout-dashboard", Label: "Dashboard", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru}},
		{
			Icon:  "database",
			Label: "Data Pondok",
			Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru},
			Children: []Item{
				{Path: "/santri", Icon: "users", Label: "Data Santri", Roles: []rbac.Role{rbac.RoleAdmin}},
				{Path: "/guru", Icon: "graduation-cap", Label: "Data Guru", Roles: []rbac.Role{rbac.RoleAdmin}},
				{Path: "/kelas", Icon: "home", Label: "Kelas", Roles: []rbac.Role{rbac.RoleAdmin}},
				{Path: "/mapel", Icon: "book-open", Label: "Mapel", Roles: []rbac.Role{rbac.RoleAdmin}},
				{Path: "/halaqoh", Icon: "circle", Label: "Halaqoh", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru}},
			},
		},
		{
			Icon:  "book",
			Label: "Akademik",
			Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru},
			Children: []Item{
				{Path: "/input-nilai", Icon: "pen-line", Label: "Input Nilai", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru}},
				{Path: "/rekap-nilai", Icon: "file-text", Label: "Rekap Nilai", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru}},
				{Path: "/hafalan", Icon: "book-marked", Label: "Hafalan", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru}},
				{Path: "/presensi", Icon: "calendar-check", Label: "Pembinaan Santri", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru}},
				{Path: "/semester", Icon: "calendar", Label: "Semester", Roles: []rbac.Role{rbac.RoleAdmin}},
				{Path: "/laporan", Icon: "download", Label: "Laporan", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru}},
			},
		},
		{
			Icon:  "wallet",
			Label: "Keuangan",
			Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleBendahara, rbac.RolePengasuh},
			Children: []Item{
				{
					Icon:  "repeat",
					Label: "Alur KAS",
					Children: []Item{
						{Path: "/keuangan/kas/pemasukan", Icon: "arrow-up-circle", Label: "Pemasukan"},
						{Path: "/keuangan/kas/pengeluaran", Icon: "arrow-down-circle", Label: "Pengeluaran"},
						{Path: "/keuangan/kas/laporan", Icon: "file-bar-chart", Label: "Laporan Kas"},
					},
				},
				{
					Icon:  "receipt",
					Label: "Pembayaran",
					Children: []Item{
						{Path: "/keuangan/pembayaran/tagihan", Icon: "receipt", Label: "Tagihan Santri"},
						{Path: "/keuangan/pembayaran/kategori", Icon: "tag", Label: "Kategori"},
						{Path: "/keuangan/pembayaran/bayar", Icon: "credit-card", Label: "Pembayaran Santri"},
						{Path: "/keuangan/pembayaran/laporan", Icon: "file-bar-chart", Label: "Laporan Pembayaran"},
					},
				},
				{
					Icon:  "piggy-bank",
					Label: "Penyaluran Dana",
					Children: []Item{
						{Path: "/keuangan/dana/anggaran", Icon: "piggy-bank", Label: "Anggaran"},
						{Path: "/keuangan/dana/persetujuan", Icon: "check-circle", Label: "Persetujuan"},
						{Path: "/keuangan/dana/realisasi", Icon: "trending-up", Label: "Realisasi Dana"},
						{Path: "/keuangan/dana/laporan", Icon: "file-bar-chart", Label: "Laporan Penyaluran"},
					},
				},
			},
		},
		{Path: "/wali-santri", Icon: "user-circle", Label: "Portal Wali", Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleGuru, rbac.RoleWali}},
		{Path: "/audit-log", Icon: "clipboard-list", Label: "Audit Log", Roles: []rbac.Role{rbac.RoleAdmin}},
		{Path: "/system-status", Icon: "activity", Label: "Status Sistem", Roles: []rbac.Role{rbac.RoleAdmin}},
		{Path: "/pengaturan", Icon: "settings", Label: "Pengaturan", Roles: []rbac.Role{rbac.RoleAdmin}},
	}
}

// Filter returns the entries visible to the given active role. Group
// headers survive only while they keep at least one visible child.
func Filter(items []Item, active rbac.Role) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !rbac.CanView(active, it.Roles) {
			continue
		}

		cp := it
		if len(it.Children) > 0 {
			cp.Children = Filter(it.Children, active)
			if cp.Path == "" && len(cp.Children) == 0 {
				continue
			}
		}
		out = append(out, cp)
	}
	return out
}

// VisibleTo returns the filtered registry for a role.
func VisibleTo(active rbac.Role) []Item {
	return Filter(Registry(), active)
}
