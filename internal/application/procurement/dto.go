package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/procurement"
)

// CreatePurchaseOrderRequest represents a request to issue a purchase order.
// The order amount is always computed from the line items.
type CreatePurchaseOrderRequest struct {
	Number    string            `json:"number" binding:"required,min=1,max=50"`
	VendorID  uuid.UUID         `json:"vendor_id" binding:"required"`
	Currency  string            `json:"currency" binding:"required,len=3"`
	Notes     string            `json:"notes" binding:"max=2000"`
	LineItems []LineItemRequest `json:"line_items" binding:"required,min=1,max=500,dive"`
}

// LineItemRequest is one requested order line
type LineItemRequest struct {
	SKU         string          `json:"sku" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateStatusRequest closes or cancels an issued order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=closed cancelled"`
}

// ERPSyncResponse is the ERP synchronization state of an order
type ERPSyncResponse struct {
	Status        integration.SyncStatus `json:"status"`
	IntegrationID *uuid.UUID             `json:"integration_id,omitempty"`
	ExternalID    string                 `json:"external_id,omitempty"`
	LastError     string                 `json:"last_error,omitempty"`
	Attempts      int                    `json:"attempts"`
	LastAttemptAt *time.Time             `json:"last_attempt_at,omitempty"`
	SyncedAt      *time.Time             `json:"synced_at,omitempty"`
}

// LineItemResponse is one order line
type LineItemResponse struct {
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID        uuid.UUID                       `json:"id"`
	TenantID  uuid.UUID                       `json:"tenant_id"`
	Number    string                          `json:"number"`
	VendorID  uuid.UUID                       `json:"vendor_id"`
	Currency  string                          `json:"currency"`
	Amount    decimal.Decimal                 `json:"amount"`
	LineItems []LineItemResponse              `json:"line_items"`
	Notes     string                          `json:"notes,omitempty"`
	Status    procurement.PurchaseOrderStatus `json:"status"`
	ERPSync   ERPSyncResponse                 `json:"erp_sync"`
	CreatedBy *uuid.UUID                      `json:"created_by,omitempty"`
	CreatedAt time.Time                       `json:"created_at"`
	UpdatedAt time.Time                       `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(po *procurement.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]LineItemResponse, len(po.LineItems))
	for i, li := range po.LineItems {
		lines[i] = LineItemResponse{
			SKU:         li.SKU,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		}
	}
	return PurchaseOrderResponse{
		ID:        po.ID,
		TenantID:  po.TenantID,
		Number:    po.Number,
		VendorID:  po.VendorID,
		Currency:  po.Currency,
		Amount:    po.Amount,
		LineItems: lines,
		Notes:     po.Notes,
		Status:    po.Status,
		ERPSync: ERPSyncResponse{
			Status:        po.ERPSync.Status,
			IntegrationID: po.ERPSync.IntegrationID,
			ExternalID:    po.ERPSync.ExternalID,
			LastError:     po.ERPSync.LastError,
			Attempts:      po.ERPSync.Attempts,
			LastAttemptAt: po.ERPSync.LastAttemptAt,
			SyncedAt:      po.ERPSync.SyncedAt,
		},
		CreatedBy: po.CreatedBy,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
