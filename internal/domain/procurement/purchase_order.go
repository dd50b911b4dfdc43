package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the business status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusIssued    PurchaseOrderStatus = "issued"
	PurchaseOrderStatusClosed    PurchaseOrderStatus = "closed"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusIssued, PurchaseOrderStatusClosed, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusIssued:
		return target == PurchaseOrderStatusClosed || target == PurchaseOrderStatusCancelled
	default:
		return false // Terminal states
	}
}

// LineItem is one ordered line. Amount = Quantity * UnitPrice.
type LineItem struct {
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// LineItemInput is the caller-provided part of a line item
type LineItemInput struct {
	SKU         string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// SyncState is the ERP synchronization annotation of a purchase order.
// It is only ever changed by the sync adapter, never by business edits.
type SyncState struct {
	Status        integration.SyncStatus
	IntegrationID *uuid.UUID
	ExternalID    string
	LastError     string
	Attempts      int
	LastAttemptAt *time.Time
	SyncedAt      *time.Time
	ClaimToken    *uuid.UUID
	ClaimedAt     *time.Time
}

// PurchaseOrder is the locally authoritative order; the ERP copy is derived from it
type PurchaseOrder struct {
	shared.TenantEntity
	Number    string
	VendorID  uuid.UUID
	Currency  string
	Amount    decimal.Decimal
	LineItems []LineItem
	Notes     string
	Status    PurchaseOrderStatus
	ERPSync   SyncState
}

// NewPurchaseOrder creates an issued purchase order. The amount is computed from
// the line items; it is never taken from the client.
func NewPurchaseOrder(tenantID uuid.UUID, createdBy *uuid.UUID, vendorID uuid.UUID, number, currency string, items []LineItemInput) (*PurchaseOrder, error) {
	number = strings.TrimSpace(number)
	if number == "" || len(number) > 50 {
		return nil, shared.NewValidationError("number", "must be 1-50 characters")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "is required")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, shared.NewValidationError("currency", "must be a 3-letter ISO code")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("line_items", "at least one line item is required")
	}

	lines := make([]LineItem, 0, len(items))
	total := decimal.Zero
	for i, in := range items {
		field := fmt.Sprintf("line_items[%d]", i)
		if strings.TrimSpace(in.SKU) == "" {
			return nil, shared.NewValidationError(field+".sku", "is required")
		}
		if !in.Quantity.IsPositive() {
			return nil, shared.NewValidationError(field+".quantity", "must be positive")
		}
		if in.UnitPrice.IsNegative() {
			return nil, shared.NewValidationError(field+".unit_price", "cannot be negative")
		}
		amount := in.Quantity.Mul(in.UnitPrice).Round(2)
		total = total.Add(amount)
		lines = append(lines, LineItem{
			SKU:         strings.TrimSpace(in.SKU),
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Amount:      amount,
		})
	}

	return &PurchaseOrder{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		Number:       number,
		VendorID:     vendorID,
		Currency:     currency,
		Amount:       total,
		LineItems:    lines,
		Status:       PurchaseOrderStatusIssued,
		ERPSync:      SyncState{Status: integration.SyncStatusNotConfigured},
	}, nil
}

// AttachIntegration marks the order pending sync against the given ERP integration
func (po *PurchaseOrder) AttachIntegration(integrationID uuid.UUID) {
	po.ERPSync.Status = integration.SyncStatusPending
	po.ERPSync.IntegrationID = &integrationID
}

// TransitionTo changes the business status
func (po *PurchaseOrder) TransitionTo(target PurchaseOrderStatus) error {
	if !po.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("purchase order cannot move from %s to %s", po.Status, target))
	}
	po.Status = target
	po.Touch()
	return nil
}

// ToERP builds the remote representation
func (po *PurchaseOrder) ToERP(vendorRef string) integration.ERPPurchaseOrder {
	lines := make([]integration.ERPLineItem, len(po.LineItems))
	for i, li := range po.LineItems {
		lines[i] = integration.ERPLineItem{
			SKU:         li.SKU,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}
	return integration.ERPPurchaseOrder{
		Number:    po.Number,
		VendorRef: vendorRef,
		Currency:  po.Currency,
		Amount:    po.Amount,
		LineItems: lines,
	}
}
