package roles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/pondokdigital/pesantren-api/internal/http/middlewares"
	svc "github.com/pondokdigital/pesantren-api/internal/http/services/roles"
	"github.com/pondokdigital/pesantren-api/internal/profile"
	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

func newController(t *testing.T) (*Controller, *profile.MemoryStore) {
	t.Helper()
	store := profile.NewMemoryStore()
	store.Put(&profile.Record{
		UserID:     "u-1",
		Nama:       "Ahmad Fauzi",
		Roles:      []string{"admin", "guru"},
		ActiveRole: "guru",
	})
	store.Put(&profile.Record{UserID: "u-legacy", Nama: "Legacy", Role: "wali"})
	return NewController(svc.NewService(svc.Deps{Store: store})), store
}

func authedRequest(method, target, body, userID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := mw.WithUser(context.Background(), &mw.AuthUser{ID: userID})
	return req.WithContext(ctx)
}

func TestMeReturnsProfile(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Me(rr, authedRequest(http.MethodGet, "/api/roles/me", "", "u-1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Roles      []string `json:"roles"`
		ActiveRole string   `json:"activeRole"`
		Nama       string   `json:"nama"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{"admin", "guru"}, body.Roles)
	assert.Equal(t, "guru", body.ActiveRole)
	assert.Equal(t, "Ahmad Fauzi", body.Nama)
}

func TestMeLegacyProfileNormalized(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Me(rr, authedRequest(http.MethodGet, "/api/roles/me", "", "u-legacy"))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Roles      []string `json:"roles"`
		ActiveRole string   `json:"activeRole"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{"wali"}, body.Roles)
	assert.Equal(t, "wali", body.ActiveRole)
}

func TestMeMissingProfile(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Me(rr, authedRequest(http.MethodGet, "/api/roles/me", "", "u-ghost"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "User profile not found")
}

func TestSwitchSuccess(t *testing.T) {
	c, store := newController(t)

	rr := httptest.NewRecorder()
	c.Switch(rr, authedRequest(http.MethodPost, "/api/roles/switch", `{"newRole":"admin"}`, "u-1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Success    bool   `json:"success"`
		ActiveRole string `json:"activeRole"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "admin", body.ActiveRole)
	assert.Equal(t, "Role berhasil diubah ke admin", body.Message)

	// the switch persisted
	p, err := store.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleAdmin, p.ActiveRole)
}

func TestSwitchMissingRole(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Switch(rr, authedRequest(http.MethodPost, "/api/roles/switch", `{}`, "u-1"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "newRole is required")
}

func TestSwitchUnassignedRoleReturnsAvailable(t *testing.T) {
	c, store := newController(t)

	rr := httptest.NewRecorder()
	c.Switch(rr, authedRequest(http.MethodPost, "/api/roles/switch", `{"newRole":"bendahara"}`, "u-1"))

	require.Equal(t, http.StatusForbidden, rr.Code)
	var body struct {
		Error          string   `json:"error"`
		Message        string   `json:"message"`
		AvailableRoles []string `json:"availableRoles"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Access denied", body.Error)
	assert.Equal(t, "User tidak memiliki role ini", body.Message)
	assert.Equal(t, []string{"admin", "guru"}, body.AvailableRoles)

	// active role unchanged
	p, err := store.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleGuru, p.ActiveRole)
}

// Unknown tags get the same rejection as unassigned ones.
func TestSwitchUnknownRoleRejected(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Switch(rr, authedRequest(http.MethodPost, "/api/roles/switch", `{"newRole":"superuser"}`, "u-1"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestSwitchMissingProfile(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Switch(rr, authedRequest(http.MethodPost, "/api/roles/switch", `{"newRole":"admin"}`, "u-ghost"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSwitchInvalidJSON(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Switch(rr, authedRequest(http.MethodPost, "/api/roles/switch", `{not json`, "u-1"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDashboardRedirect(t *testing.T) {
	c, store := newController(t)

	cases := []struct {
		record *profile.Record
		want   string
	}{
		{&profile.Record{UserID: "r-admin", Roles: []string{"admin"}, ActiveRole: "admin"}, "/dashboard/admin"},
		{&profile.Record{UserID: "r-guru", Roles: []string{"guru"}, ActiveRole: "guru"}, "/dashboard/akademik"},
		{&profile.Record{UserID: "r-bendahara", Roles: []string{"bendahara"}, ActiveRole: "bendahara"}, "/dashboard/keuangan"},
		{&profile.Record{UserID: "r-pengasuh", Roles: []string{"pengasuh"}, ActiveRole: "pengasuh"}, "/dashboard/keuangan"},
		{&profile.Record{UserID: "r-wali", Roles: []string{"wali"}, ActiveRole: "wali"}, "/dashboard/walisantri"},
		// unknown active role falls back to the admin dashboard
		{&profile.Record{UserID: "r-odd", Roles: []string{"admin"}, ActiveRole: "mystery"}, "/dashboard/admin"},
	}

	for _, tc := range cases {
		store.Put(tc.record)
		rr := httptest.NewRecorder()
		c.DashboardRedirect(rr, authedRequest(http.MethodGet, "/api/roles/dashboard-redirect", "", tc.record.UserID))

		require.Equal(t, http.StatusOK, rr.Code, tc.record.UserID)
		var body struct {
			RedirectPath string `json:"redirectPath"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, tc.want, body.RedirectPath, tc.record.UserID)
	}
}

func TestMenuFiltersByActiveRole(t *testing.T) {
	c, store := newController(t)
	store.Put(&profile.Record{UserID: "u-wali", Roles: []string{"wali"}, ActiveRole: "wali"})

	rr := httptest.NewRecorder()
	c.Menu(rr, authedRequest(http.MethodGet, "/api/roles/menu", "", "u-wali"))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Items []struct {
			Label string `json:"label"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Portal Wali", body.Items[0].Label)
}

func TestUnauthenticatedContextRejected(t *testing.T) {
	c, _ := newController(t)

	rr := httptest.NewRecorder()
	c.Me(rr, httptest.NewRequest(http.MethodGet, "/api/roles/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
