package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseRole("  admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, got)

	for _, bad := range []string{"", "Admin", "root", "super admin"} {
		_, err := ParseRole(bad)
		assert.ErrorIs(t, err, ErrInvalidRole, bad)
	}
}

func TestRoles_Order(t *testing.T) {
	assert.Equal(t, []Role{
		RolePeuple, RoleConstellation, RoleTornades, RoleTour, RoleBatview, RoleAdmin, RoleSuperAdmin,
	}, Roles())

	// Callers get a copy.
	roles := Roles()
	roles[0] = RoleSuperAdmin
	assert.Equal(t, RolePeuple, Roles()[0])
}

func TestRole_Tiers(t *testing.T) {
	assert.Equal(t, RolePeuple, DefaultRole)

	for _, r := range Roles() {
		assert.Equal(t, r == RoleAdmin || r == RoleSuperAdmin, r.IsPrivileged(), r)
		assert.Equal(t, r == RoleSuperAdmin, r.IsSuperAdmin(), r)
	}
	assert.False(t, Role("unknown").Valid())
	assert.False(t, Role("unknown").IsPrivileged())
}

func TestErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("assign role: %w", ErrCannotModifySuperAdmin)
	assert.Equal(t, KindForbidden, KindOf(wrapped))
	assert.Equal(t, "cannot_modify_superadmin", ReasonOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(ErrStaleRecord))
	assert.Empty(t, ReasonOf(ErrStaleRecord))

	inner := fmt.Errorf("boom")
	e := &Error{Kind: KindNotFound, Reason: "user_not_found", Err: inner}
	assert.ErrorIs(t, e, inner)
	assert.Equal(t, "user_not_found: boom", e.Error())
}
