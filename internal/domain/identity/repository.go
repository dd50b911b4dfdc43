package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// TenantRepository persists tenants. Tenants have no delete operation.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	Create(ctx context.Context, tenant *Tenant) error
	Save(ctx context.Context, tenant *Tenant) error
}

// UserRepository persists users
type UserRepository interface {
	// FindByID is unscoped; only the tenant resolver and token refresh use it
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, int64, error)
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
}
