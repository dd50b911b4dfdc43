// Package contract manages vendor contracts.
package contract

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/contract"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ContractService handles contract operations
type ContractService struct {
	contracts contract.Repository
	vendors   partner.VendorRepository
	logger    *zap.Logger
}

// NewContractService creates a new ContractService
func NewContractService(contracts contract.Repository, vendors partner.VendorRepository, logger *zap.Logger) *ContractService {
	return &ContractService{contracts: contracts, vendors: vendors, logger: logger}
}

// Create drafts a contract with a vendor of the caller's tenant
func (s *ContractService) Create(ctx context.Context, p identity.Principal, req CreateContractRequest) (*ContractResponse, error) {
	vendor, err := partner.Referenced(ctx, s.vendors, p.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}
	c, err := contract.NewContract(p.TenantID, &p.UserID, vendor.ID, req.Number, req.Title, req.Value, req.Currency, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	c.Terms = req.Terms

	if err := s.contracts.Create(ctx, c); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return nil, shared.NewDomainError(shared.CodeConflict, "a contract with this number already exists")
		}
		return nil, err
	}
	resp := ToContractResponse(c)
	return &resp, nil
}

// GetByID returns one contract of the caller's tenant
func (s *ContractService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*ContractResponse, error) {
	c, err := s.contracts.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(c)
	return &resp, nil
}

// List lists contracts
func (s *ContractService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[ContractResponse], error) {
	filter = filter.Normalize()
	items, total, err := s.contracts.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[ContractResponse]{}, err
	}
	out := make([]ContractResponse, len(items))
	for i := range items {
		out[i] = ToContractResponse(&items[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

// ChangeStatus activates, expires or terminates a contract
func (s *ContractService) ChangeStatus(ctx context.Context, p identity.Principal, id uuid.UUID, req ChangeContractStatusRequest) (*ContractResponse, error) {
	c, err := s.contracts.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	from := c.Status
	if err := c.TransitionTo(contract.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.contracts.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Contract status changed",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("contract_id", c.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(c.Status)))

	resp := ToContractResponse(c)
	return &resp, nil
}
