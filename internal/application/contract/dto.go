package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/contract"
)

// CreateContractRequest represents a request to draft a contract
type CreateContractRequest struct {
	VendorID  uuid.UUID       `json:"vendor_id" binding:"required"`
	Number    string          `json:"number" binding:"required,min=1,max=50"`
	Title     string          `json:"title" binding:"required,min=1,max=200"`
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency" binding:"omitempty,len=3"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
	Terms     string          `json:"terms" binding:"max=20000"`
}

// ChangeContractStatusRequest moves a contract through its lifecycle
type ChangeContractStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active expired terminated"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	VendorID  uuid.UUID       `json:"vendor_id"`
	Number    string          `json:"number"`
	Title     string          `json:"title"`
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency,omitempty"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Terms     string          `json:"terms,omitempty"`
	Status    contract.Status `json:"status"`
	CreatedBy *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToContractResponse converts a domain contract to a response DTO
func ToContractResponse(c *contract.Contract) ContractResponse {
	return ContractResponse{
		ID:        c.ID,
		TenantID:  c.TenantID,
		VendorID:  c.VendorID,
		Number:    c.Number,
		Title:     c.Title,
		Value:     c.Value,
		Currency:  c.Currency,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Terms:     c.Terms,
		Status:    c.Status,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
