package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleSuperAdmin, PermEnterpriseManage, true},
		{RoleAdmin, PermEnterpriseManage, false},
		{RoleAdmin, PermOrgManage, true},
		{RoleAdmin, PermBillingManage, true},
		{RoleUser, PermCallDispatch, true},
		{RoleUser, PermContactManage, true},
		{RoleUser, PermAgentManage, false},
		{RoleUser, PermUserList, false},
		{"", PermCallDispatch, false},
		{"auditor", PermContactManage, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission),
			"role=%q permission=%q", tt.role, tt.permission)
	}
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleSuperAdmin))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleUser))
	assert.False(t, IsValidRole("owner"))
	assert.False(t, IsValidRole(""))
}
