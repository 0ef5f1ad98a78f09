// Copyright 2026 The BhashAI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rbac

// Platform roles. A user carries exactly one role, scoped to their
// enterprise. super_admin is the only role allowed to operate across
// enterprise boundaries.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// Permissions gate state-changing operations in the transport layer.
const (
	PermEnterpriseManage = "enterprise:manage"
	PermOrgManage        = "org:manage"
	PermAgentManage      = "agent:manage"
	PermContactManage    = "contact:manage"
	PermCallDispatch     = "call:dispatch"
	PermBillingManage    = "billing:manage"
	PermUserList         = "user:list"
)

var rolePermissions = map[string]map[string]bool{
	RoleSuperAdmin: {
		PermEnterpriseManage: true,
		PermOrgManage:        true,
		PermAgentManage:      true,
		PermContactManage:    true,
		PermCallDispatch:     true,
		PermBillingManage:    true,
		PermUserList:         true,
	},
	RoleAdmin: {
		PermOrgManage:     true,
		PermAgentManage:   true,
		PermContactManage: true,
		PermCallDispatch:  true,
		PermBillingManage: true,
		PermUserList:      true,
	},
	RoleUser: {
		PermContactManage: true,
		PermCallDispatch:  true,
	},
}

// IsValidRole reports whether role is one of the platform roles.
func IsValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// HasPermission reports whether the given role grants the permission.
// Unknown roles grant nothing (fail closed).
func HasPermission(role, permission string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[permission]
}
