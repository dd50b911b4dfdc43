package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/risk"
	"gorm.io/datatypes"
)

// RiskAssessmentModel is the persistence model for risk assessments.
type RiskAssessmentModel struct {
	OwnedRecord
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Source        risk.Source     `gorm:"type:varchar(20);not null"`
	Level         risk.Level      `gorm:"type:varchar(20)"`
	Notes         string          `gorm:"type:text"`
	IntegrationID *uuid.UUID      `gorm:"type:uuid"`
	SyncStatus    risk.SyncStatus `gorm:"type:varchar(20);not null"`
	ProviderScore *float64
	ProviderGrade string     `gorm:"type:varchar(20)"`
	ProviderRef   string     `gorm:"type:varchar(100)"`
	SyncError     string     `gorm:"type:text"`
	SyncedAt      *time.Time
	Insight       datatypes.JSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (RiskAssessmentModel) TableName() string {
	return "risk_assessments"
}

// ToDomain converts the persistence model to a domain Assessment.
func (m *RiskAssessmentModel) ToDomain() (*risk.Assessment, error) {
	insight, err := insightFromJSON(m.Insight)
	if err != nil {
		return nil, err
	}
	return &risk.Assessment{
		TenantEntity:  m.ownedEntity(),
		VendorID:      m.VendorID,
		Source:        m.Source,
		Level:         m.Level,
		Notes:         m.Notes,
		IntegrationID: m.IntegrationID,
		SyncStatus:    m.SyncStatus,
		ProviderScore: m.ProviderScore,
		ProviderGrade: m.ProviderGrade,
		ProviderRef:   m.ProviderRef,
		SyncError:     m.SyncError,
		SyncedAt:      m.SyncedAt,
		Insight:       insight,
	}, nil
}

// RiskAssessmentModelFromDomain creates a new persistence model from a domain Assessment.
func RiskAssessmentModelFromDomain(a *risk.Assessment) (*RiskAssessmentModel, error) {
	insight, err := insightToJSON(a.Insight)
	if err != nil {
		return nil, err
	}
	m := &RiskAssessmentModel{
		VendorID:      a.VendorID,
		Source:        a.Source,
		Level:         a.Level,
		Notes:         a.Notes,
		IntegrationID: a.IntegrationID,
		SyncStatus:    a.SyncStatus,
		ProviderScore: a.ProviderScore,
		ProviderGrade: a.ProviderGrade,
		ProviderRef:   a.ProviderRef,
		SyncError:     a.SyncError,
		SyncedAt:      a.SyncedAt,
		Insight:       insight,
	}
	m.fillOwned(a.TenantEntity)
	return m, nil
}
