package survey

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Repository persists surveys and their responses
type Repository interface {
	Create(ctx context.Context, s *Survey) error
	Save(ctx context.Context, s *Survey) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Survey, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Survey, int64, error)
	// AddResponse fails with CONFLICT when the respondent already answered
	AddResponse(ctx context.Context, r *Response) error
	ListResponses(ctx context.Context, tenantID, surveyID uuid.UUID) ([]Response, error)
}
