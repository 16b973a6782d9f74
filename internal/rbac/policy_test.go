package rbac

import "testing"

func TestDecide_SelfRoleAllowed(t *testing.T) {
	for _, r := range AllRoles {
		got := Decide([]Role{r}, r, []Role{r})
		if got != Allow {
			t.Fatalf("Decide({%s}, %s, {%s}) = %s, want allow", r, r, r, got)
		}
	}
}

func TestDecide_EmptyRequiredAlwaysAllows(t *testing.T) {
	cases := []struct {
		assigned []Role
		active   Role
	}{
		{nil, ""},
		{[]Role{RoleAdmin}, RoleAdmin},
		{[]Role{RoleGuru}, RoleWali},         // active not even assigned
		{[]Role{RoleAdmin, RoleWali}, "xyz"}, // unknown tag
	}
	for _, c := range cases {
		if got := Decide(c.assigned, c.active, nil); got != Allow {
			t.Fatalf("Decide(%v, %q, nil) = %s, want allow", c.assigned, c.active, got)
		}
		if got := Decide(c.assigned, c.active, []Role{}); got != Allow {
			t.Fatalf("Decide(%v, %q, {}) = %s, want allow", c.assigned, c.active, got)
		}
	}
}

func TestDecide_NotRequiredFiresBeforeMismatch(t *testing.T) {
	// active role is neither required nor assigned: the required-roles test
	// must win, so the client is offered a switch instead of an integrity
	// error.
	got := Decide([]Role{RoleAdmin, RoleGuru}, RoleBendahara, []Role{RoleAdmin, RoleGuru})
	if got != DenyNotRequired {
		t.Fatalf("got %s, want deny_not_required", got)
	}
}

func TestDecide_StaleActiveRoleNeverAllows(t *testing.T) {
	// Critical regression case: active role passes the required-roles test
	// but is no longer among the user's assigned roles. An inconsistent
	// profile must never grant access.
	got := Decide([]Role{RoleAdmin}, RoleBendahara, []Role{RoleAdmin, RoleBendahara})
	if got != DenyRoleMismatch {
		t.Fatalf("got %s, want deny_role_mismatch", got)
	}
}

func TestDecide_MultiRoleUser(t *testing.T) {
	assigned := []Role{RoleAdmin, RoleGuru, RoleWali}

	if got := Decide(assigned, RoleGuru, []Role{RoleAdmin, RoleGuru}); got != Allow {
		t.Fatalf("guru on akademik route = %s, want allow", got)
	}
	if got := Decide(assigned, RoleWali, []Role{RoleAdmin, RoleGuru}); got != DenyNotRequired {
		t.Fatalf("wali on akademik route = %s, want deny_not_required", got)
	}
}

func TestDecide_PengasuhIsDistinctFromBendahara(t *testing.T) {
	// pengasuh shares finance grants via the route role sets, but is never
	// treated as bendahara by the policy itself.
	if got := Decide([]Role{RolePengasuh}, RolePengasuh, []Role{RoleBendahara}); got != DenyNotRequired {
		t.Fatalf("pengasuh on bendahara-only route = %s, want deny_not_required", got)
	}
	finance := []Role{RoleAdmin, RoleBendahara, RolePengasuh}
	if got := Decide([]Role{RolePengasuh}, RolePengasuh, finance); got != Allow {
		t.Fatalf("pengasuh on finance route = %s, want allow", got)
	}
}

func TestCanView_MirrorsRulesOneAndTwo(t *testing.T) {
	if !CanView(RoleWali, nil) {
		t.Fatal("no declared roles should be visible to any session")
	}
	if CanView(RoleWali, []Role{RoleAdmin, RoleGuru}) {
		t.Fatal("wali must not see akademik entries")
	}
	if !CanView(RoleGuru, []Role{RoleAdmin, RoleGuru}) {
		t.Fatal("guru must see akademik entries")
	}
}

func TestFromStrings_SetSemantics(t *testing.T) {
	got := FromStrings([]string{" Admin", "guru", "admin", "", "GURU", "wali"})
	want := []Role{RoleAdmin, RoleGuru, RoleWali}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
