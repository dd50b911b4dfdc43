package helpdesk

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/helpdesk"
)

// CreateTicketRequest represents a request to open a ticket
type CreateTicketRequest struct {
	Subject     string     `json:"subject" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=10000"`
	Category    string     `json:"category" binding:"max=100"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	VendorID    *uuid.UUID `json:"vendor_id"`
}

// ChangeTicketStatusRequest moves a ticket through its lifecycle
type ChangeTicketStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=in_progress resolved closed"`
	Resolution string `json:"resolution" binding:"max=4000"`
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID          uuid.UUID             `json:"id"`
	TenantID    uuid.UUID             `json:"tenant_id"`
	Subject     string                `json:"subject"`
	Description string                `json:"description,omitempty"`
	Category    string                `json:"category,omitempty"`
	Priority    helpdesk.Priority     `json:"priority"`
	VendorID    *uuid.UUID            `json:"vendor_id,omitempty"`
	Status      helpdesk.TicketStatus `json:"status"`
	Resolution  string                `json:"resolution,omitempty"`
	ResolvedAt  *time.Time            `json:"resolved_at,omitempty"`
	CreatedBy   *uuid.UUID            `json:"created_by,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ToTicketResponse converts a domain ticket to a response DTO
func ToTicketResponse(t *helpdesk.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		TenantID:    t.TenantID,
		Subject:     t.Subject,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		VendorID:    t.VendorID,
		Status:      t.Status,
		Resolution:  t.Resolution,
		ResolvedAt:  t.ResolvedAt,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
