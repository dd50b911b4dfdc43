package bid

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/bid"
)

// CreateRFPRequest represents a request to draft an RFP
type CreateRFPRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=10000"`
	Category    string          `json:"category" binding:"max=100"`
	Budget      decimal.Decimal `json:"budget"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
	DueDate     *time.Time      `json:"due_date"`
}

// ChangeRFPStatusRequest moves an RFP through its lifecycle
type ChangeRFPStatusRequest struct {
	Status          string     `json:"status" binding:"required,oneof=open closed awarded cancelled"`
	AwardedVendorID *uuid.UUID `json:"awarded_vendor_id"`
}

// RFPResponse represents an RFP in API responses
type RFPResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	Budget          decimal.Decimal `json:"budget"`
	Currency        string          `json:"currency,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Status          bid.RFPStatus   `json:"status"`
	AwardedVendorID *uuid.UUID      `json:"awarded_vendor_id,omitempty"`
	CreatedBy       *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToRFPResponse converts a domain RFP to a response DTO
func ToRFPResponse(r *bid.RFP) RFPResponse {
	return RFPResponse{
		ID:              r.ID,
		TenantID:        r.TenantID,
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Budget:          r.Budget,
		Currency:        r.Currency,
		DueDate:         r.DueDate,
		Status:          r.Status,
		AwardedVendorID: r.AwardedVendorID,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
