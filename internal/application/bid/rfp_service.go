// Package bid runs requests for proposal from draft to award.
package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/bid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RFPService handles RFP operations
type RFPService struct {
	rfps    bid.RFPRepository
	vendors partner.VendorRepository
	logger  *zap.Logger
}

// NewRFPService creates a new RFPService
func NewRFPService(rfps bid.RFPRepository, vendors partner.VendorRepository, logger *zap.Logger) *RFPService {
	return &RFPService{rfps: rfps, vendors: vendors, logger: logger}
}

// Create drafts an RFP
func (s *RFPService) Create(ctx context.Context, p identity.Principal, req CreateRFPRequest) (*RFPResponse, error) {
	rfp, err := bid.NewRFP(p.TenantID, &p.UserID, req.Title, req.Description, req.Category, req.Budget, req.Currency, req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.rfps.Create(ctx, rfp); err != nil {
		return nil, err
	}
	resp := ToRFPResponse(rfp)
	return &resp, nil
}

// GetByID returns one RFP of the caller's tenant
func (s *RFPService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*RFPResponse, error) {
	rfp, err := s.rfps.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToRFPResponse(rfp)
	return &resp, nil
}

// List lists RFPs
func (s *RFPService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[RFPResponse], error) {
	filter = filter.Normalize()
	items, total, err := s.rfps.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[RFPResponse]{}, err
	}
	out := make([]RFPResponse, len(items))
	for i := range items {
		out[i] = ToRFPResponse(&items[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

// ChangeStatus moves the RFP. Awarding names a vendor of the same tenant.
func (s *RFPService) ChangeStatus(ctx context.Context, p identity.Principal, id uuid.UUID, req ChangeRFPStatusRequest) (*RFPResponse, error) {
	rfp, err := s.rfps.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}

	target := bid.RFPStatus(req.Status)
	var awarded *uuid.UUID
	if target == bid.RFPStatusAwarded && req.AwardedVendorID != nil {
		vendor, err := partner.Referenced(ctx, s.vendors, p.TenantID, *req.AwardedVendorID)
		if err != nil {
			return nil, err
		}
		awarded = &vendor.ID
	}
	from := rfp.Status
	if err := rfp.TransitionTo(target, awarded); err != nil {
		return nil, err
	}
	if err := s.rfps.Save(ctx, rfp); err != nil {
		return nil, err
	}

	s.logger.Info("RFP status changed",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("rfp_id", rfp.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(rfp.Status)))

	resp := ToRFPResponse(rfp)
	return &resp, nil
}
