package risk

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// AssessmentRepository persists risk assessments
type AssessmentRepository interface {
	Create(ctx context.Context, a *Assessment) error
	Save(ctx context.Context, a *Assessment) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Assessment, error)
	// FindAllForTenant lists assessments; a non-nil vendorID narrows to one vendor
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, vendorID *uuid.UUID, filter shared.Filter) ([]Assessment, int64, error)
}
