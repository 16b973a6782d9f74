// Package roles defines the request/response shapes of the roles API.
package roles

import "github.com/pondokdigital/pesantren-api/internal/menu"

// MeResponse is the body of GET /api/roles/me.
type MeResponse struct {
	Roles      []string `json:"roles"`
	ActiveRole string   `json:"activeRole"`
	Nama       string   `json:"nama"`
}

// SwitchRequest is the body of POST /api/roles/switch.
type SwitchRequest struct {
	NewRole string `json:"newRole"`
}

// SwitchResponse is the success body of POST /api/roles/switch.
type SwitchResponse struct {
	Success    bool   `json:"success"`
	ActiveRole string `json:"activeRole"`
	Message    string `json:"message"`
}

// DashboardRedirectResponse is the body of GET /api/roles/dashboard-redirect.
type DashboardRedirectResponse struct {
	ActiveRole   string `json:"activeRole"`
	RedirectPath string `json:"redirectPath"`
}

// MenuResponse is the body of GET /api/roles/menu.
type MenuResponse struct {
	Items []menu.Item `json:"items"`
}
