package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// SyncUpdate is written by the holder of a sync claim
type SyncUpdate struct {
	State SyncState
	// ReleaseClaim clears the claim token when the run finishes
	ReleaseClaim bool
}

// PurchaseOrderRepository persists purchase orders. Every method is tenant-scoped.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *PurchaseOrder) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, int64, error)
	UpdateStatus(ctx context.Context, po *PurchaseOrder) error

	// ClaimSync atomically moves the order into syncing and stores token, but only
	// from a claimable status or from an in-flight status whose claim is older than
	// staleBefore. It reports whether the claim was taken.
	ClaimSync(ctx context.Context, tenantID, id, token uuid.UUID, integrationID uuid.UUID, now, staleBefore time.Time) (bool, error)
	// UpdateSync writes sync columns only, and only while token still holds the claim.
	UpdateSync(ctx context.Context, tenantID, id, token uuid.UUID, update SyncUpdate) (bool, error)
}
