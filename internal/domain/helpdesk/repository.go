package helpdesk

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// TicketRepository persists tickets
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	Save(ctx context.Context, t *Ticket) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Ticket, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Ticket, int64, error)
	// CountUnresolvedForVendor counts open and in-progress tickets about a vendor
	CountUnresolvedForVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error)
}
