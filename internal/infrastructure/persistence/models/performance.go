package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/performance"
	"gorm.io/datatypes"
)

// PenaltyModel is the persistence model for penalties.
type PenaltyModel struct {
	OwnedRecord
	VendorID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ContractID      *uuid.UUID                `gorm:"type:uuid"`
	Reason          string                    `gorm:"type:text;not null"`
	Currency        string                    `gorm:"type:varchar(3)"`
	Amount          *decimal.Decimal          `gorm:"type:numeric(18,2)"`
	AISuggested     bool                      `gorm:"column:ai_suggested;not null;default:false"`
	SuggestedAmount *decimal.Decimal          `gorm:"type:numeric(18,2)"`
	Insight         datatypes.JSON            `gorm:"type:jsonb"`
	Status          performance.PenaltyStatus `gorm:"type:varchar(20);not null;index"`
	DecidedBy       *uuid.UUID                `gorm:"type:uuid"`
	DecidedAt       *time.Time
	DecisionNote    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PenaltyModel) TableName() string {
	return "penalties"
}

// ToDomain converts the persistence model to a domain Penalty.
func (m *PenaltyModel) ToDomain() (*performance.Penalty, error) {
	insight, err := insightFromJSON(m.Insight)
	if err != nil {
		return nil, err
	}
	return &performance.Penalty{
		TenantEntity:    m.ownedEntity(),
		VendorID:        m.VendorID,
		ContractID:      m.ContractID,
		Reason:          m.Reason,
		Currency:        m.Currency,
		Amount:          m.Amount,
		AISuggested:     m.AISuggested,
		SuggestedAmount: m.SuggestedAmount,
		Insight:         insight,
		Status:          m.Status,
		DecidedBy:       m.DecidedBy,
		DecidedAt:       m.DecidedAt,
		DecisionNote:    m.DecisionNote,
	}, nil
}

// PenaltyModelFromDomain creates a new persistence model from a domain Penalty.
func PenaltyModelFromDomain(p *performance.Penalty) (*PenaltyModel, error) {
	insight, err := insightToJSON(p.Insight)
	if err != nil {
		return nil, err
	}
	m := &PenaltyModel{
		VendorID:        p.VendorID,
		ContractID:      p.ContractID,
		Reason:          p.Reason,
		Currency:        p.Currency,
		Amount:          p.Amount,
		AISuggested:     p.AISuggested,
		SuggestedAmount: p.SuggestedAmount,
		Insight:         insight,
		Status:          p.Status,
		DecidedBy:       p.DecidedBy,
		DecidedAt:       p.DecidedAt,
		DecisionNote:    p.DecisionNote,
	}
	m.fillOwned(p.TenantEntity)
	return m, nil
}
