package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vornexz/pay/internal/auth"
)

func TestRoleIsAtLeast(t *testing.T) {
	tests := []struct {
		role     auth.UserRole
		minRole  auth.UserRole
		expected bool
	}{
		{auth.RoleOwner, auth.RoleAdmin, true},
		{auth.RoleAdmin, auth.RoleAdmin, true},
		{auth.RoleMember, auth.RoleAdmin, false},
		{auth.RoleGuest, auth.RoleMember, false},
		{auth.RoleMember, auth.RoleGuest, true},
		{"bogus", auth.RoleGuest, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, auth.RoleIsAtLeast(tt.role, tt.minRole),
			"RoleIsAtLeast(%s, %s)", tt.role, tt.minRole)
	}
}

func TestParseRole(t *testing.T) {
	role, ok := auth.ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleAdmin, role)

	_, ok = auth.ParseRole("superuser")
	assert.False(t, ok)
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, auth.IsValidRole(auth.RoleGuest))
	assert.True(t, auth.IsValidRole(auth.RoleOwner))
	assert.False(t, auth.IsValidRole(""))
}
