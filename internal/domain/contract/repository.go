package contract

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Repository persists contracts
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Save(ctx context.Context, c *Contract) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contract, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Contract, int64, error)
}
