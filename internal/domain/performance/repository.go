package performance

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// PenaltyRepository persists penalties
type PenaltyRepository interface {
	Create(ctx context.Context, p *Penalty) error
	Save(ctx context.Context, p *Penalty) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Penalty, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Penalty, int64, error)
	// CountApprovedForVendor counts enforceable penalties already recorded against a vendor
	CountApprovedForVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error)
}
