package performance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/performance"
)

// CreatePenaltyRequest proposes a penalty against a vendor. SuggestedAmount
// is advisory and never becomes the enforceable amount.
type CreatePenaltyRequest struct {
	VendorID        uuid.UUID        `json:"vendor_id" binding:"required"`
	ContractID      *uuid.UUID       `json:"contract_id"`
	Reason          string           `json:"reason" binding:"required,min=1,max=2000"`
	Currency        string           `json:"currency" binding:"omitempty,len=3"`
	Amount          *decimal.Decimal `json:"amount"`
	AISuggested     bool             `json:"ai_suggested"`
	SuggestedAmount *decimal.Decimal `json:"suggested_amount"`
}

// ApprovePenaltyRequest approves a pending penalty, optionally fixing the amount
type ApprovePenaltyRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Note   string           `json:"note" binding:"max=2000"`
}

// RejectPenaltyRequest rejects a pending penalty
type RejectPenaltyRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// PenaltyResponse represents a penalty in API responses
type PenaltyResponse struct {
	ID              uuid.UUID                 `json:"id"`
	TenantID        uuid.UUID                 `json:"tenant_id"`
	VendorID        uuid.UUID                 `json:"vendor_id"`
	ContractID      *uuid.UUID                `json:"contract_id,omitempty"`
	Reason          string                    `json:"reason"`
	Currency        string                    `json:"currency,omitempty"`
	Amount          *decimal.Decimal          `json:"amount,omitempty"`
	AISuggested     bool                      `json:"ai_suggested"`
	SuggestedAmount *decimal.Decimal          `json:"suggested_amount,omitempty"`
	Insight         *advisory.Insight         `json:"insight,omitempty"`
	Status          performance.PenaltyStatus `json:"status"`
	DecidedBy       *uuid.UUID                `json:"decided_by,omitempty"`
	DecidedAt       *time.Time                `json:"decided_at,omitempty"`
	DecisionNote    string                    `json:"decision_note,omitempty"`
	CreatedBy       *uuid.UUID                `json:"created_by,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// ToPenaltyResponse converts a domain penalty to a response DTO
func ToPenaltyResponse(p *performance.Penalty) PenaltyResponse {
	return PenaltyResponse{
		ID:              p.ID,
		TenantID:        p.TenantID,
		VendorID:        p.VendorID,
		ContractID:      p.ContractID,
		Reason:          p.Reason,
		Currency:        p.Currency,
		Amount:          p.Amount,
		AISuggested:     p.AISuggested,
		SuggestedAmount: p.SuggestedAmount,
		Insight:         p.Insight,
		Status:          p.Status,
		DecidedBy:       p.DecidedBy,
		DecidedAt:       p.DecidedAt,
		DecisionNote:    p.DecisionNote,
		CreatedBy:       p.CreatedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
