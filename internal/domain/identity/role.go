package identity

import "strings"

// Role is drawn from a fixed set; it is never accepted from a client for authorization
type Role string

const (
	RoleTenantAdmin Role = "tenant_admin"
	RoleTenantUser  Role = "tenant_user"
	RoleVendorUser  Role = "vendor_user"
	RoleEvaluator   Role = "evaluator"
)

// AllRoles lists every valid role
func AllRoles() []Role {
	return []Role{RoleTenantAdmin, RoleTenantUser, RoleVendorUser, RoleEvaluator}
}

// IsValid checks if the role is one of the fixed roles
func (r Role) IsValid() bool {
	switch r {
	case RoleTenantAdmin, RoleTenantUser, RoleVendorUser, RoleEvaluator:
		return true
	}
	return false
}

// ParseRole normalizes and validates a role name
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.IsValid()
}

func (r Role) String() string {
	return string(r)
}
