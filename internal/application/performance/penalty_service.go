// Package performance handles vendor penalties and their human approval.
package performance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/contract"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/performance"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/insight"
	"go.uber.org/zap"
)

// PenaltyService proposes, approves and rejects penalties
type PenaltyService struct {
	penalties performance.PenaltyRepository
	vendors   partner.VendorRepository
	contracts contract.Repository
	advisor   advisory.Provider
	logger    *zap.Logger
}

// NewPenaltyService creates a new PenaltyService
func NewPenaltyService(
	penalties performance.PenaltyRepository,
	vendors partner.VendorRepository,
	contracts contract.Repository,
	advisor advisory.Provider,
	logger *zap.Logger,
) *PenaltyService {
	return &PenaltyService{
		penalties: penalties,
		vendors:   vendors,
		contracts: contracts,
		advisor:   advisor,
		logger:    logger,
	}
}

// Create records a pending penalty. Whether or not it was suggested by the
// advisory provider, only an approval makes it enforceable.
func (s *PenaltyService) Create(ctx context.Context, p identity.Principal, req CreatePenaltyRequest) (*PenaltyResponse, error) {
	vendor, err := partner.Referenced(ctx, s.vendors, p.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}
	if req.ContractID != nil {
		if err := s.checkContract(ctx, p.TenantID, vendor.ID, *req.ContractID); err != nil {
			return nil, err
		}
	}

	penalty, err := performance.NewPenalty(p.TenantID, &p.UserID, vendor.ID, req.ContractID,
		req.Reason, req.Currency, req.Amount, req.AISuggested, req.SuggestedAmount)
	if err != nil {
		return nil, err
	}
	penalty.AttachInsight(s.assess(ctx, penalty))

	if err := s.penalties.Create(ctx, penalty); err != nil {
		return nil, err
	}
	s.logger.Info("Penalty proposed",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("penalty_id", penalty.ID.String()),
		zap.String("vendor_id", vendor.ID.String()),
		zap.Bool("ai_suggested", penalty.AISuggested))

	resp := ToPenaltyResponse(penalty)
	return &resp, nil
}

// Approve makes a pending penalty enforceable
func (s *PenaltyService) Approve(ctx context.Context, p identity.Principal, id uuid.UUID, req ApprovePenaltyRequest) (*PenaltyResponse, error) {
	return s.decide(ctx, p, id, func(penalty *performance.Penalty) error {
		return penalty.Approve(p.UserID, req.Amount, req.Note)
	})
}

// Reject closes a pending penalty without enforcement
func (s *PenaltyService) Reject(ctx context.Context, p identity.Principal, id uuid.UUID, req RejectPenaltyRequest) (*PenaltyResponse, error) {
	return s.decide(ctx, p, id, func(penalty *performance.Penalty) error {
		return penalty.Reject(p.UserID, req.Note)
	})
}

// GetByID returns one penalty of the caller's tenant
func (s *PenaltyService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*PenaltyResponse, error) {
	penalty, err := s.penalties.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPenaltyResponse(penalty)
	return &resp, nil
}

// List lists the penalties of the caller's tenant
func (s *PenaltyService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[PenaltyResponse], error) {
	filter = filter.Normalize()
	items, total, err := s.penalties.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[PenaltyResponse]{}, err
	}
	out := make([]PenaltyResponse, len(items))
	for i := range items {
		out[i] = ToPenaltyResponse(&items[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

func (s *PenaltyService) decide(ctx context.Context, p identity.Principal, id uuid.UUID, apply func(*performance.Penalty) error) (*PenaltyResponse, error) {
	penalty, err := s.penalties.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(penalty); err != nil {
		return nil, err
	}
	if err := s.penalties.Save(ctx, penalty); err != nil {
		return nil, err
	}
	s.logger.Info("Penalty decided",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("penalty_id", penalty.ID.String()),
		zap.String("status", string(penalty.Status)),
		zap.String("decided_by", p.UserID.String()))

	resp := ToPenaltyResponse(penalty)
	return &resp, nil
}

func (s *PenaltyService) checkContract(ctx context.Context, tenantID, vendorID, contractID uuid.UUID) error {
	c, err := s.contracts.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeInvalidReference, "contract does not exist")
		}
		return err
	}
	if c.VendorID != vendorID {
		return shared.NewDomainError(shared.CodeInvalidReference, "contract belongs to a different vendor")
	}
	return nil
}

func (s *PenaltyService) assess(ctx context.Context, penalty *performance.Penalty) advisory.Insight {
	attrs := map[string]any{}
	if n, err := s.penalties.CountApprovedForVendor(ctx, penalty.TenantID, penalty.VendorID); err == nil {
		attrs[insight.AttrPriorPenalties] = n
	} else {
		s.logger.Warn("Penalty history unavailable for insight", zap.Error(err))
	}
	if penalty.SuggestedAmount != nil {
		attrs[insight.AttrSuggestedAmount] = penalty.SuggestedAmount.String()
	}

	in, err := s.advisor.Assess(ctx, advisory.Subject{
		Kind:       advisory.SubjectPenalty,
		TenantID:   penalty.TenantID,
		SubjectID:  penalty.ID,
		Attributes: attrs,
	})
	if err != nil {
		s.logger.Warn("Advisory provider unavailable", zap.String("penalty_id", penalty.ID.String()), zap.Error(err))
		return advisory.None("advisory provider unavailable")
	}
	return in
}
