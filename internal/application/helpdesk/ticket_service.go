// Package helpdesk handles support tickets raised by tenant and vendor users.
package helpdesk

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/helpdesk"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TicketService handles ticket operations. Vendor users only ever see and
// change the tickets they opened; the repository narrows by data scope.
type TicketService struct {
	tickets helpdesk.TicketRepository
	vendors partner.VendorRepository
	logger  *zap.Logger
}

// NewTicketService creates a new TicketService
func NewTicketService(tickets helpdesk.TicketRepository, vendors partner.VendorRepository, logger *zap.Logger) *TicketService {
	return &TicketService{tickets: tickets, vendors: vendors, logger: logger}
}

// Create opens a ticket, optionally about a vendor of the caller's tenant
func (s *TicketService) Create(ctx context.Context, p identity.Principal, req CreateTicketRequest) (*TicketResponse, error) {
	var vendorID *uuid.UUID
	if req.VendorID != nil {
		vendor, err := partner.Referenced(ctx, s.vendors, p.TenantID, *req.VendorID)
		if err != nil {
			return nil, err
		}
		vendorID = &vendor.ID
	}
	t, err := helpdesk.NewTicket(p.TenantID, &p.UserID, req.Subject, req.Description, req.Category, helpdesk.Priority(req.Priority), vendorID)
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTicketResponse(t)
	return &resp, nil
}

// GetByID returns one ticket visible to the caller
func (s *TicketService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*TicketResponse, error) {
	t, err := s.tickets.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTicketResponse(t)
	return &resp, nil
}

// List lists the tickets visible to the caller
func (s *TicketService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[TicketResponse], error) {
	filter = filter.Normalize()
	items, total, err := s.tickets.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[TicketResponse]{}, err
	}
	out := make([]TicketResponse, len(items))
	for i := range items {
		out[i] = ToTicketResponse(&items[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

// ChangeStatus moves the ticket
func (s *TicketService) ChangeStatus(ctx context.Context, p identity.Principal, id uuid.UUID, req ChangeTicketStatusRequest) (*TicketResponse, error) {
	t, err := s.tickets.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := t.TransitionTo(helpdesk.TicketStatus(req.Status), req.Resolution); err != nil {
		return nil, err
	}
	if err := s.tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Debug("Ticket status changed",
		zap.String("ticket_id", t.ID.String()),
		zap.String("status", string(t.Status)))

	resp := ToTicketResponse(t)
	return &resp, nil
}
