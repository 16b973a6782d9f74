package rbac

// DashboardAccess maps a dashboard category to the roles allowed to view
// it. Used for redirect-target lookups only, never for hard enforcement.
var DashboardAccess = map[string][]Role{
	"admin":      {RoleAdmin},
	"akademik":   {RoleAdmin, RoleGuru},
	"keuangan":   {RoleAdmin, RoleBendahara, RolePengasuh},
	"walisantri": {RoleAdmin, RoleWali},
}

// dashboardPaths maps an active role to its landing dashboard.
var dashboardPaths = map[Role]string{
	RoleAdmin:     "/dashboard/admin",
	RoleGuru:      "/dashboard/akademik",
	RoleBendahara: "/dashboard/keuangan",
	RolePengasuh:  "/dashboard/keuangan",
	RoleWali:      "/dashboard/walisantri",
}

// adminDashboardPath is the fallback for unknown or missing active roles.
const adminDashboardPath = "/dashboard/admin"

// DashboardPath returns the landing dashboard for the given active role.
// Unknown or empty roles fall back to the admin dashboard.
func DashboardPath(active Role) string {
	if p, ok := dashboardPaths[active]; ok {
		return p
	}
	return adminDashboardPath
}
