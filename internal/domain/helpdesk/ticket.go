package helpdesk

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// TicketStatus represents the status of a support ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// IsValid checks if the status is valid
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	switch s {
	case TicketStatusOpen:
		return target == TicketStatusInProgress
	case TicketStatusInProgress:
		return target == TicketStatusResolved
	case TicketStatusResolved:
		return target == TicketStatusClosed || target == TicketStatusInProgress
	default:
		return false
	}
}

// Priority of a ticket
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Ticket is a helpdesk request raised by any tenant user or vendor user
type Ticket struct {
	shared.TenantEntity
	Subject     string
	Description string
	Category    string
	Priority    Priority
	VendorID    *uuid.UUID
	Status      TicketStatus
	Resolution  string
	ResolvedAt  *time.Time
}

// NewTicket opens a ticket
func NewTicket(tenantID uuid.UUID, createdBy *uuid.UUID, subject, description, category string, priority Priority, vendorID *uuid.UUID) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" || len(subject) > 200 {
		return nil, shared.NewValidationError("subject", "must be 1-200 characters")
	}
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.IsValid() {
		return nil, shared.NewValidationError("priority", "must be one of low, normal, high, urgent")
	}
	return &Ticket{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		Subject:      subject,
		Description:  description,
		Category:     category,
		Priority:     priority,
		VendorID:     vendorID,
		Status:       TicketStatusOpen,
	}, nil
}

// TransitionTo moves the ticket to target; resolution is kept when resolving
func (t *Ticket) TransitionTo(target TicketStatus, resolution string) error {
	if !target.IsValid() {
		return shared.NewValidationError("status", "unknown status")
	}
	if !t.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("ticket cannot move from %s to %s", t.Status, target))
	}
	switch target {
	case TicketStatusResolved:
		now := time.Now().UTC()
		t.ResolvedAt = &now
		t.Resolution = strings.TrimSpace(resolution)
	case TicketStatusInProgress:
		t.ResolvedAt = nil
	}
	t.Status = target
	t.Touch()
	return nil
}
