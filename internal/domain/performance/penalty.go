package performance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// PenaltyStatus represents the decision state of a penalty
type PenaltyStatus string

const (
	PenaltyStatusPending  PenaltyStatus = "pending"
	PenaltyStatusApproved PenaltyStatus = "approved"
	PenaltyStatusRejected PenaltyStatus = "rejected"
)

// Penalty is a proposed sanction against a vendor. Only a human decision
// makes it enforceable.
type Penalty struct {
	shared.TenantEntity
	VendorID        uuid.UUID
	ContractID      *uuid.UUID
	Reason          string
	Currency        string
	Amount          *decimal.Decimal
	AISuggested     bool
	SuggestedAmount *decimal.Decimal
	Insight         *advisory.Insight
	Status          PenaltyStatus
	DecidedBy       *uuid.UUID
	DecidedAt       *time.Time
	DecisionNote    string
}

// NewPenalty creates a pending penalty. A suggested amount stays advisory.
func NewPenalty(tenantID uuid.UUID, createdBy *uuid.UUID, vendorID uuid.UUID, contractID *uuid.UUID, reason, currency string, amount *decimal.Decimal, aiSuggested bool, suggestedAmount *decimal.Decimal) (*Penalty, error) {
	reason = strings.TrimSpace(reason)
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "is required")
	}
	if reason == "" {
		return nil, shared.NewValidationError("reason", "is required")
	}
	if amount != nil && !amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "must be positive")
	}
	if suggestedAmount != nil && suggestedAmount.IsNegative() {
		return nil, shared.NewValidationError("suggested_amount", "cannot be negative")
	}
	return &Penalty{
		TenantEntity:    shared.NewTenantEntity(tenantID, createdBy),
		VendorID:        vendorID,
		ContractID:      contractID,
		Reason:          reason,
		Currency:        strings.ToUpper(strings.TrimSpace(currency)),
		Amount:          amount,
		AISuggested:     aiSuggested,
		SuggestedAmount: suggestedAmount,
		Status:          PenaltyStatusPending,
	}, nil
}

// AttachInsight annotates the penalty without affecting its status or amount
func (p *Penalty) AttachInsight(in advisory.Insight) {
	p.Insight = &in
	p.Touch()
}

// Approve makes the penalty enforceable. amount overrides the proposed amount;
// one of the two must be present.
func (p *Penalty) Approve(approver uuid.UUID, amount *decimal.Decimal, note string) error {
	if err := p.ensurePending(); err != nil {
		return err
	}
	if amount != nil {
		if !amount.IsPositive() {
			return shared.NewValidationError("amount", "must be positive")
		}
		p.Amount = amount
	}
	if p.Amount == nil {
		return shared.NewValidationError("amount", "is required to approve a penalty without an amount")
	}
	p.decide(PenaltyStatusApproved, approver, note)
	return nil
}

// Reject closes the penalty without enforcement
func (p *Penalty) Reject(approver uuid.UUID, note string) error {
	if err := p.ensurePending(); err != nil {
		return err
	}
	p.decide(PenaltyStatusRejected, approver, note)
	return nil
}

func (p *Penalty) ensurePending() error {
	if p.Status != PenaltyStatusPending {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("penalty already %s", p.Status))
	}
	return nil
}

func (p *Penalty) decide(status PenaltyStatus, approver uuid.UUID, note string) {
	now := time.Now().UTC()
	p.Status = status
	p.DecidedBy = &approver
	p.DecidedAt = &now
	p.DecisionNote = strings.TrimSpace(note)
	p.Touch()
}
