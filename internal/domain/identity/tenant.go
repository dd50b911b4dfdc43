package identity

import (
	"regexp"
	"strings"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// TenantStatus represents the lifecycle status of a tenant
type TenantStatus string

const (
	TenantStatusActive      TenantStatus = "active"
	TenantStatusSuspended   TenantStatus = "suspended"
	TenantStatusDeactivated TenantStatus = "deactivated"
)

// HostingMode describes where a tenant's workload runs
type HostingMode string

const (
	HostingShared    HostingMode = "shared"
	HostingDedicated HostingMode = "dedicated"
)

var tenantCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,48}[a-z0-9]$`)

// Tenant is an isolated customer organization. Tenants are never deleted.
type Tenant struct {
	shared.BaseEntity
	Code        string
	Name        string
	Region      string
	HostingMode HostingMode
	Status      TenantStatus
}

// NewTenant creates an active tenant
func NewTenant(code, name, region string, hosting HostingMode) (*Tenant, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !tenantCodePattern.MatchString(code) {
		return nil, shared.NewValidationError("tenant_code", "must be 3-50 lowercase letters, digits or hyphens")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewValidationError("tenant_name", "must be 1-200 characters")
	}
	if hosting == "" {
		hosting = HostingShared
	}
	if hosting != HostingShared && hosting != HostingDedicated {
		return nil, shared.NewValidationError("hosting_mode", "must be shared or dedicated")
	}
	if region == "" {
		region = "default"
	}

	return &Tenant{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Name:        name,
		Region:      region,
		HostingMode: hosting,
		Status:      TenantStatusActive,
	}, nil
}

// IsActive reports whether requests against this tenant may proceed
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Suspend temporarily blocks all access to the tenant
func (t *Tenant) Suspend() error {
	if t.Status != TenantStatusActive {
		return shared.NewDomainError(shared.CodeInvalidState, "only active tenants can be suspended")
	}
	t.Status = TenantStatusSuspended
	t.Touch()
	return nil
}

// Activate re-enables a suspended tenant. Deactivated tenants stay deactivated.
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusDeactivated {
		return shared.NewDomainError(shared.CodeInvalidState, "deactivated tenants cannot be reactivated")
	}
	t.Status = TenantStatusActive
	t.Touch()
	return nil
}

// Deactivate permanently retires the tenant
func (t *Tenant) Deactivate() {
	t.Status = TenantStatusDeactivated
	t.Touch()
}
