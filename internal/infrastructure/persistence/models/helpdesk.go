package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/helpdesk"
)

// TicketModel is the persistence model for helpdesk tickets.
type TicketModel struct {
	OwnedRecord
	Subject     string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Category    string                `gorm:"type:varchar(100)"`
	Priority    helpdesk.Priority     `gorm:"type:varchar(20);not null"`
	VendorID    *uuid.UUID            `gorm:"type:uuid"`
	Status      helpdesk.TicketStatus `gorm:"type:varchar(20);not null;index"`
	Resolution  string                `gorm:"type:text"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (TicketModel) TableName() string {
	return "tickets"
}

// ToDomain converts the persistence model to a domain Ticket.
func (m *TicketModel) ToDomain() *helpdesk.Ticket {
	return &helpdesk.Ticket{
		TenantEntity: m.ownedEntity(),
		Subject:      m.Subject,
		Description:  m.Description,
		Category:     m.Category,
		Priority:     m.Priority,
		VendorID:     m.VendorID,
		Status:       m.Status,
		Resolution:   m.Resolution,
		ResolvedAt:   m.ResolvedAt,
	}
}

// TicketModelFromDomain creates a new persistence model from a domain Ticket.
func TicketModelFromDomain(t *helpdesk.Ticket) *TicketModel {
	m := &TicketModel{
		Subject:     t.Subject,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		VendorID:    t.VendorID,
		Status:      t.Status,
		Resolution:  t.Resolution,
		ResolvedAt:  t.ResolvedAt,
	}
	m.fillOwned(t.TenantEntity)
	return m
}
