package identity

import (
	"context"
	"errors"

	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService provisions tenants and manages their lifecycle.
// It serves self-registration and the operator CLI; no HTTP route changes tenant status.
type TenantService struct {
	tenants identity.TenantRepository
	scope   TransactionScope
	logger  *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(tenants identity.TenantRepository, scope TransactionScope, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenants: tenants,
		scope:   scope,
		logger:  logger,
	}
}

// Provision creates a tenant and its first tenant_admin in one transaction
func (s *TenantService) Provision(ctx context.Context, input ProvisionInput) (*identity.Tenant, *identity.User, error) {
	tenant, err := identity.NewTenant(input.TenantCode, input.TenantName, input.Region, input.HostingMode)
	if err != nil {
		return nil, nil, err
	}
	admin, err := identity.NewUser(tenant.ID, input.AdminEmail, input.AdminName, input.Password, identity.RoleTenantAdmin)
	if err != nil {
		return nil, nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.TenantRepo().Create(ctx, tenant); err != nil {
			if errors.Is(err, shared.ErrConflict) {
				return shared.NewDomainError(shared.CodeConflict, "tenant code is already taken")
			}
			return err
		}
		return repos.UserRepo().Create(ctx, admin)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Tenant provisioned",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("tenant_code", tenant.Code),
		zap.String("admin_user_id", admin.ID.String()))

	return tenant, admin, nil
}

// Suspend blocks every request against the tenant until it is activated again
func (s *TenantService) Suspend(ctx context.Context, code string) (*identity.Tenant, error) {
	return s.transition(ctx, code, (*identity.Tenant).Suspend)
}

// Activate re-enables a suspended tenant
func (s *TenantService) Activate(ctx context.Context, code string) (*identity.Tenant, error) {
	return s.transition(ctx, code, (*identity.Tenant).Activate)
}

// Deactivate retires a tenant for good. Its data is kept.
func (s *TenantService) Deactivate(ctx context.Context, code string) (*identity.Tenant, error) {
	return s.transition(ctx, code, func(t *identity.Tenant) error {
		t.Deactivate()
		return nil
	})
}

func (s *TenantService) transition(ctx context.Context, code string, apply func(*identity.Tenant) error) (*identity.Tenant, error) {
	tenant, err := s.tenants.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	from := tenant.Status
	if err := apply(tenant); err != nil {
		return nil, err
	}
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant status changed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(tenant.Status)))
	return tenant, nil
}
