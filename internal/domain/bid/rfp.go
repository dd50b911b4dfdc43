package bid

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// RFPStatus represents the status of a request for proposal
type RFPStatus string

const (
	RFPStatusDraft     RFPStatus = "draft"
	RFPStatusOpen      RFPStatus = "open"
	RFPStatusClosed    RFPStatus = "closed"
	RFPStatusAwarded   RFPStatus = "awarded"
	RFPStatusCancelled RFPStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s RFPStatus) IsValid() bool {
	switch s {
	case RFPStatusDraft, RFPStatusOpen, RFPStatusClosed, RFPStatusAwarded, RFPStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s RFPStatus) CanTransitionTo(target RFPStatus) bool {
	if target == RFPStatusCancelled {
		return s != RFPStatusAwarded && s != RFPStatusCancelled
	}
	switch s {
	case RFPStatusDraft:
		return target == RFPStatusOpen
	case RFPStatusOpen:
		return target == RFPStatusClosed
	case RFPStatusClosed:
		return target == RFPStatusAwarded
	default:
		return false
	}
}

// RFP is a request for proposal issued to vendors
type RFP struct {
	shared.TenantEntity
	Title           string
	Description     string
	Category        string
	Budget          decimal.Decimal
	Currency        string
	DueDate         *time.Time
	Status          RFPStatus
	AwardedVendorID *uuid.UUID
}

// NewRFP creates a draft RFP
func NewRFP(tenantID uuid.UUID, createdBy *uuid.UUID, title, description, category string, budget decimal.Decimal, currency string, dueDate *time.Time) (*RFP, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 200 {
		return nil, shared.NewValidationError("title", "must be 1-200 characters")
	}
	if budget.IsNegative() {
		return nil, shared.NewValidationError("budget", "cannot be negative")
	}
	return &RFP{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		Title:        title,
		Description:  description,
		Category:     category,
		Budget:       budget,
		Currency:     strings.ToUpper(strings.TrimSpace(currency)),
		DueDate:      dueDate,
		Status:       RFPStatusDraft,
	}, nil
}

// TransitionTo moves the RFP to target. Awarding requires the winning vendor.
func (r *RFP) TransitionTo(target RFPStatus, awardedVendorID *uuid.UUID) error {
	if !target.IsValid() {
		return shared.NewValidationError("status", "unknown status")
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("rfp cannot move from %s to %s", r.Status, target))
	}
	if target == RFPStatusAwarded {
		if awardedVendorID == nil || *awardedVendorID == uuid.Nil {
			return shared.NewValidationError("awarded_vendor_id", "is required when awarding")
		}
		r.AwardedVendorID = awardedVendorID
	}
	r.Status = target
	r.Touch()
	return nil
}
