package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/audit"
	"gorm.io/datatypes"
)

// AuditEntryModel is the persistence model for audit entries.
// The table is insert-only; the primary key includes created_at so the
// PostgreSQL table can be range-partitioned by month.
type AuditEntryModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time         `gorm:"primaryKey;not null;index"`
	TenantID     *uuid.UUID        `gorm:"type:uuid;index"`
	ActorID      *uuid.UUID        `gorm:"type:uuid"`
	Module       string            `gorm:"type:varchar(50);not null;index"`
	Action       string            `gorm:"type:varchar(100);not null"`
	ResourceType string            `gorm:"type:varchar(50)"`
	ResourceID   string            `gorm:"type:varchar(100)"`
	Detail       datatypes.JSONMap `gorm:"type:jsonb"`
	Outcome      audit.Outcome     `gorm:"type:varchar(20);not null"`
	StatusCode   int               `gorm:"not null"`
	ErrorCode    string            `gorm:"type:varchar(50)"`
	RequestID    string            `gorm:"type:varchar(64)"`
	IP           string            `gorm:"type:varchar(64)"`
	UserAgent    string            `gorm:"type:varchar(512)"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit Entry.
func (m *AuditEntryModel) ToDomain() audit.Entry {
	return audit.Entry{
		ID:           m.ID,
		TenantID:     m.TenantID,
		ActorID:      m.ActorID,
		Module:       m.Module,
		Action:       m.Action,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Detail:       map[string]any(m.Detail),
		Outcome:      m.Outcome,
		StatusCode:   m.StatusCode,
		ErrorCode:    m.ErrorCode,
		RequestID:    m.RequestID,
		IP:           m.IP,
		UserAgent:    m.UserAgent,
		CreatedAt:    m.CreatedAt,
	}
}

// AuditEntryModelFromDomain creates a new persistence model from a domain audit Entry.
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	return &AuditEntryModel{
		ID:           e.ID,
		CreatedAt:    e.CreatedAt,
		TenantID:     e.TenantID,
		ActorID:      e.ActorID,
		Module:       e.Module,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Detail:       datatypes.JSONMap(e.Detail),
		Outcome:      e.Outcome,
		StatusCode:   e.StatusCode,
		ErrorCode:    e.ErrorCode,
		RequestID:    e.RequestID,
		IP:           e.IP,
		UserAgent:    e.UserAgent,
	}
}
