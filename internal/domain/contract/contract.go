package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a contract
type Status string

const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusTerminated Status = "terminated"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusExpired, StatusTerminated:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusActive
	case StatusActive:
		return target == StatusExpired || target == StatusTerminated
	default:
		return false
	}
}

// Contract is an agreement with a vendor
type Contract struct {
	shared.TenantEntity
	VendorID  uuid.UUID
	Number    string
	Title     string
	Value     decimal.Decimal
	Currency  string
	StartDate time.Time
	EndDate   time.Time
	Terms     string
	Status    Status
}

// NewContract creates a draft contract
func NewContract(tenantID uuid.UUID, createdBy *uuid.UUID, vendorID uuid.UUID, number, title string, value decimal.Decimal, currency string, start, end time.Time) (*Contract, error) {
	number = strings.TrimSpace(number)
	title = strings.TrimSpace(title)
	if number == "" {
		return nil, shared.NewValidationError("number", "is required")
	}
	if title == "" {
		return nil, shared.NewValidationError("title", "is required")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "is required")
	}
	if value.IsNegative() {
		return nil, shared.NewValidationError("value", "cannot be negative")
	}
	if !end.After(start) {
		return nil, shared.NewValidationError("end_date", "must be after start_date")
	}

	return &Contract{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		VendorID:     vendorID,
		Number:       number,
		Title:        title,
		Value:        value,
		Currency:     strings.ToUpper(strings.TrimSpace(currency)),
		StartDate:    start.UTC(),
		EndDate:      end.UTC(),
		Status:       StatusDraft,
	}, nil
}

// TransitionTo moves the contract to target
func (c *Contract) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError("status", "unknown status")
	}
	if !c.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("contract cannot move from %s to %s", c.Status, target))
	}
	c.Status = target
	c.Touch()
	return nil
}
