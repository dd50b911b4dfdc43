package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/partner"
)

// CreateVendorRequest represents a request to register a vendor
type CreateVendorRequest struct {
	Code         string `json:"code" binding:"required,min=1,max=50"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Category     string `json:"category" binding:"max=100"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email,max=200"`
	Country      string `json:"country" binding:"omitempty,len=2"`
	RatingRef    string `json:"rating_ref" binding:"max=100"`
	ERPRef       string `json:"erp_ref" binding:"max=100"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Category     *string `json:"category" binding:"omitempty,max=100"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=200"`
	Country      *string `json:"country" binding:"omitempty,len=2"`
	RatingRef    *string `json:"rating_ref" binding:"omitempty,max=100"`
	ERPRef       *string `json:"erp_ref" binding:"omitempty,max=100"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive blocked"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID           uuid.UUID            `json:"id"`
	TenantID     uuid.UUID            `json:"tenant_id"`
	Code         string               `json:"code"`
	Name         string               `json:"name"`
	Category     string               `json:"category,omitempty"`
	ContactEmail string               `json:"contact_email,omitempty"`
	Country      string               `json:"country,omitempty"`
	RatingRef    string               `json:"rating_ref,omitempty"`
	ERPRef       string               `json:"erp_ref,omitempty"`
	Status       partner.VendorStatus `json:"status"`
	CreatedBy    *uuid.UUID           `json:"created_by,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToVendorResponse converts a domain vendor to a response DTO
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:           v.ID,
		TenantID:     v.TenantID,
		Code:         v.Code,
		Name:         v.Name,
		Category:     v.Category,
		ContactEmail: v.ContactEmail,
		Country:      v.Country,
		RatingRef:    v.RatingRef,
		ERPRef:       v.ERPRef,
		Status:       v.Status,
		CreatedBy:    v.CreatedBy,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// ToVendorResponses converts a slice of vendors
func ToVendorResponses(vendors []partner.Vendor) []VendorResponse {
	out := make([]VendorResponse, len(vendors))
	for i := range vendors {
		out[i] = ToVendorResponse(&vendors[i])
	}
	return out
}
