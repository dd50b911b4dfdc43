package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/integration"
)

// IntegrationModel is the persistence model for a configured external system.
type IntegrationModel struct {
	OwnedRecord
	Kind    integration.Kind `gorm:"type:varchar(30);not null"`
	Name    string           `gorm:"type:varchar(100);not null"`
	BaseURL string           `gorm:"type:varchar(500);not null"`
	APIKey  string           `gorm:"type:varchar(500)"`
	Enabled bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (IntegrationModel) TableName() string {
	return "integrations"
}

// ToDomain converts the persistence model to a domain Integration.
func (m *IntegrationModel) ToDomain() *integration.Integration {
	return &integration.Integration{
		TenantEntity: m.ownedEntity(),
		Kind:         m.Kind,
		Name:         m.Name,
		BaseURL:      m.BaseURL,
		APIKey:       m.APIKey,
		Enabled:      m.Enabled,
	}
}

// IntegrationModelFromDomain creates a new persistence model from a domain Integration.
func IntegrationModelFromDomain(in *integration.Integration) *IntegrationModel {
	m := &IntegrationModel{
		Kind:    in.Kind,
		Name:    in.Name,
		BaseURL: in.BaseURL,
		APIKey:  in.APIKey,
		Enabled: in.Enabled,
	}
	m.fillOwned(in.TenantEntity)
	return m
}

// SyncLogModel is the persistence model for one sync attempt. Insert-only.
type SyncLogModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	IntegrationID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Direction     integration.Direction `gorm:"type:varchar(20);not null"`
	ResourceType  string                `gorm:"type:varchar(50);not null;index:idx_sync_logs_resource,priority:1"`
	ResourceID    uuid.UUID             `gorm:"type:uuid;not null;index:idx_sync_logs_resource,priority:2"`
	Attempt       int                   `gorm:"not null"`
	Status        integration.LogStatus `gorm:"type:varchar(20);not null"`
	RecordCount   int                   `gorm:"not null;default:0"`
	ErrorDetail   string                `gorm:"type:text"`
	DurationMs    int64                 `gorm:"not null;default:0"`
	CreatedAt     time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SyncLogModel) TableName() string {
	return "sync_logs"
}

// ToDomain converts the persistence model to a domain SyncLog.
func (m *SyncLogModel) ToDomain() integration.SyncLog {
	return integration.SyncLog{
		ID:            m.ID,
		TenantID:      m.TenantID,
		IntegrationID: m.IntegrationID,
		Direction:     m.Direction,
		ResourceType:  m.ResourceType,
		ResourceID:    m.ResourceID,
		Attempt:       m.Attempt,
		Status:        m.Status,
		RecordCount:   m.RecordCount,
		ErrorDetail:   m.ErrorDetail,
		Duration:      time.Duration(m.DurationMs) * time.Millisecond,
		CreatedAt:     m.CreatedAt,
	}
}

// SyncLogModelFromDomain creates a new persistence model from a domain SyncLog.
func SyncLogModelFromDomain(l *integration.SyncLog) *SyncLogModel {
	return &SyncLogModel{
		ID:            l.ID,
		TenantID:      l.TenantID,
		IntegrationID: l.IntegrationID,
		Direction:     l.Direction,
		ResourceType:  l.ResourceType,
		ResourceID:    l.ResourceID,
		Attempt:       l.Attempt,
		Status:        l.Status,
		RecordCount:   l.RecordCount,
		ErrorDetail:   l.ErrorDetail,
		DurationMs:    l.Duration.Milliseconds(),
		CreatedAt:     l.CreatedAt,
	}
}
