package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// RFPRepository persists RFPs
type RFPRepository interface {
	Create(ctx context.Context, r *RFP) error
	Save(ctx context.Context, r *RFP) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RFP, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]RFP, int64, error)
}
