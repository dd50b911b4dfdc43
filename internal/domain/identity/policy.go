package identity

import (
	"fmt"
	"sort"
)

// Operation names a privileged action guarded by the authorization gate
type Operation string

const (
	OpSession Operation = "auth.session"

	OpUserList   Operation = "admin.user.list"
	OpUserCreate Operation = "admin.user.create"
	OpUserUpdate Operation = "admin.user.update"
	OpAuditQuery Operation = "admin.audit.query"

	OpIntegrationList     Operation = "admin.integration.list"
	OpIntegrationCreate   Operation = "admin.integration.create"
	OpIntegrationUpdate   Operation = "admin.integration.update"
	OpIntegrationSyncLogs Operation = "admin.integration.sync_logs"

	OpVendorRead  Operation = "vendor.read"
	OpVendorWrite Operation = "vendor.write"

	OpRFPRead  Operation = "bids.rfp.read"
	OpRFPWrite Operation = "bids.rfp.write"

	OpContractRead  Operation = "contracts.contract.read"
	OpContractWrite Operation = "contracts.contract.write"

	OpPurchaseOrderRead   Operation = "procurement.purchase_order.read"
	OpPurchaseOrderCreate Operation = "procurement.purchase_order.create"
	OpPurchaseOrderSync   Operation = "procurement.purchase_order.sync"

	OpRiskRead   Operation = "risk.assessment.read"
	OpRiskAssess Operation = "risk.assessment.create"

	OpPenaltyRead   Operation = "performance.penalty.read"
	OpPenaltyCreate Operation = "performance.penalty.create"
	OpPenaltyDecide Operation = "performance.penalty.decide"

	OpTicketRead  Operation = "helpdesk.ticket.read"
	OpTicketWrite Operation = "helpdesk.ticket.write"

	OpSurveyRead    Operation = "surveys.survey.read"
	OpSurveyCreate  Operation = "surveys.survey.create"
	OpSurveyRespond Operation = "surveys.survey.respond"
)

// DefaultRoleSets returns the built-in allowed-role table
func DefaultRoleSets() map[Operation][]Role {
	admin := []Role{RoleTenantAdmin}
	internal := []Role{RoleTenantAdmin, RoleTenantUser}
	everyone := AllRoles()

	return map[Operation][]Role{
		OpSession: everyone,

		OpUserList:            admin,
		OpUserCreate:          admin,
		OpUserUpdate:          admin,
		OpAuditQuery:          admin,
		OpIntegrationList:     admin,
		OpIntegrationCreate:   admin,
		OpIntegrationUpdate:   admin,
		OpIntegrationSyncLogs: admin,

		OpVendorRead:  {RoleTenantAdmin, RoleTenantUser, RoleEvaluator},
		OpVendorWrite: internal,

		OpRFPRead:  everyone,
		OpRFPWrite: internal,

		OpContractRead:  {RoleTenantAdmin, RoleTenantUser, RoleEvaluator},
		OpContractWrite: internal,

		OpPurchaseOrderRead:   internal,
		OpPurchaseOrderCreate: internal,
		OpPurchaseOrderSync:   admin,

		OpRiskRead:   {RoleTenantAdmin, RoleTenantUser, RoleEvaluator},
		OpRiskAssess: {RoleTenantAdmin, RoleEvaluator},

		OpPenaltyRead:   {RoleTenantAdmin, RoleTenantUser, RoleEvaluator},
		OpPenaltyCreate: {RoleTenantAdmin, RoleEvaluator},
		OpPenaltyDecide: admin,

		OpTicketRead:  everyone,
		OpTicketWrite: everyone,

		OpSurveyRead:    everyone,
		OpSurveyCreate:  admin,
		OpSurveyRespond: everyone,
	}
}

// Policy maps operations to allowed roles. It is immutable after construction
// and safe for concurrent use.
type Policy struct {
	allowed map[Operation]map[Role]struct{}
}

// NewPolicy builds a policy from base role sets plus per-operation overrides.
// An override replaces the base set for that operation entirely.
func NewPolicy(base map[Operation][]Role, overrides map[string][]string) (*Policy, error) {
	p := &Policy{allowed: make(map[Operation]map[Role]struct{}, len(base)+len(overrides))}

	for op, roles := range base {
		p.allowed[op] = toSet(roles)
	}

	for name, roleNames := range overrides {
		roles := make([]Role, 0, len(roleNames))
		for _, rn := range roleNames {
			r, ok := ParseRole(rn)
			if !ok {
				return nil, fmt.Errorf("authz override %q: unknown role %q", name, rn)
			}
			roles = append(roles, r)
		}
		p.allowed[Operation(name)] = toSet(roles)
	}

	return p, nil
}

func toSet(roles []Role) map[Role]struct{} {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Allows reports whether role may perform op. Unknown operations and empty sets deny.
func (p *Policy) Allows(op Operation, role Role) bool {
	set, ok := p.allowed[op]
	if !ok || len(set) == 0 {
		return false
	}
	_, ok = set[role]
	return ok
}

// RequiredRoles returns the sorted allowed roles for op
func (p *Policy) RequiredRoles(op Operation) []Role {
	roles := make([]Role, 0, len(p.allowed[op]))
	for r := range p.allowed[op] {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
