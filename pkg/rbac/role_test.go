package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"customer", RoleCustomer},
		{"Manager", RoleManager},
		{"ADMIN", RoleAdmin},
		{"Super Admin", RoleSuperAdmin},
		{"super_admin", RoleSuperAdmin},
		{"super-admin", RoleSuperAdmin},
		{"  SUPER   ADMIN  ", RoleSuperAdmin},
		{"superadmin", RoleCustomer}, // not a whole-word match
		{"site manager", RoleManager},
		{"garbage", RoleCustomer},
		{"", RoleCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	// Whatever arrives, the result is one of the four canonical roles.
	for _, input := range []string{"customer", "Manager", "ADMIN", "Super Admin", "garbage", "", "   ", "root;drop"} {
		got := Normalize(input)
		assert.Contains(t, []Role{RoleCustomer, RoleManager, RoleAdmin, RoleSuperAdmin}, got, "input %q", input)
	}
}

func TestRank(t *testing.T) {
	assert.Equal(t, RankCustomer, Rank(RoleCustomer))
	assert.Equal(t, RankManager, Rank(RoleManager))
	assert.Equal(t, RankAdmin, Rank(RoleAdmin))
	assert.Equal(t, RankSuperAdmin, Rank(RoleSuperAdmin))
	assert.Equal(t, RankCustomer, Rank(Role("bogus")))
}

func TestHasAtLeast(t *testing.T) {
	assert.True(t, HasAtLeast("super admin", "admin"))
	assert.True(t, HasAtLeast("admin", "admin"))
	assert.True(t, HasAtLeast("admin", "manager"))
	assert.False(t, HasAtLeast("manager", "admin"))
	assert.False(t, HasAtLeast("customer", "manager"))
	assert.False(t, HasAtLeast("garbage", "manager"))
}

func TestHasAtLeastMonotonic(t *testing.T) {
	roles := []Role{RoleCustomer, RoleManager, RoleAdmin, RoleSuperAdmin}
	for _, r1 := range roles {
		for _, r2 := range roles {
			want := Rank(r1) >= Rank(r2)
			assert.Equal(t, want, HasAtLeast(string(r1), string(r2)), "%s vs %s", r1, r2)
		}
	}
}

func TestIsPrivileged(t *testing.T) {
	assert.True(t, IsPrivileged("manager"))
	assert.True(t, IsPrivileged("admin"))
	assert.True(t, IsPrivileged("Super Admin"))
	assert.False(t, IsPrivileged("customer"))
	assert.False(t, IsPrivileged(""))
}

func TestCanImpersonate(t *testing.T) {
	assert.True(t, CanImpersonate("super admin", "admin"))
	assert.True(t, CanImpersonate("admin", "manager"))
	assert.True(t, CanImpersonate("manager", "customer"))

	assert.False(t, CanImpersonate("admin", "super admin"))
	assert.False(t, CanImpersonate("manager", "admin"))
	assert.False(t, CanImpersonate("admin", "admin"))
	assert.False(t, CanImpersonate("customer", "customer"))
}

func TestCanImpersonateStrictOrder(t *testing.T) {
	roles := []Role{RoleCustomer, RoleManager, RoleAdmin, RoleSuperAdmin}
	for _, actor := range roles {
		for _, target := range roles {
			want := Rank(actor) > Rank(target)
			assert.Equal(t, want, CanImpersonate(string(actor), string(target)), "%s impersonating %s", actor, target)
		}
	}
}
