// Package partner manages the tenant's vendor registry.
package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
	logger     *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, logger *zap.Logger) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// Create registers a vendor. Codes are unique per tenant.
func (s *VendorService) Create(ctx context.Context, p identity.Principal, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := partner.NewVendor(p.TenantID, &p.UserID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := vendor.Update(req.Name, req.Category, req.ContactEmail, req.Country, req.RatingRef, req.ERPRef); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return nil, shared.NewDomainError(shared.CodeConflict, "a vendor with this code already exists")
		}
		return nil, err
	}

	s.logger.Info("Vendor created",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("code", vendor.Code))

	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// List retrieves a page of vendors
func (s *VendorService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[VendorResponse], error) {
	filter = filter.Normalize()
	vendors, total, err := s.vendorRepo.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[VendorResponse]{}, err
	}
	return shared.NewPaginated(ToVendorResponses(vendors), total, filter), nil
}

// Update changes descriptive fields and optionally the status of a vendor
func (s *VendorService) Update(ctx context.Context, p identity.Principal, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}

	err = vendor.Update(
		valueOr(req.Name, vendor.Name),
		valueOr(req.Category, vendor.Category),
		valueOr(req.ContactEmail, vendor.ContactEmail),
		valueOr(req.Country, vendor.Country),
		valueOr(req.RatingRef, vendor.RatingRef),
		valueOr(req.ERPRef, vendor.ERPRef),
	)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := vendor.ChangeStatus(partner.VendorStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
