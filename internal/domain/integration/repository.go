package integration

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Repository persists integration configurations
type Repository interface {
	Create(ctx context.Context, in *Integration) error
	Save(ctx context.Context, in *Integration) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Integration, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Integration, int64, error)
	// FindEnabled returns the most recently created enabled integration of kind,
	// or ErrNotConfigured
	FindEnabled(ctx context.Context, tenantID uuid.UUID, kind Kind) (*Integration, error)
}

// SyncLogRepository is append-only
type SyncLogRepository interface {
	Append(ctx context.Context, entry *SyncLog) error
	ListForIntegration(ctx context.Context, tenantID, integrationID uuid.UUID, limit int) ([]SyncLog, error)
	ListForResource(ctx context.Context, tenantID uuid.UUID, resourceType string, resourceID uuid.UUID) ([]SyncLog, error)
}
