package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/bid"
)

// RFPModel is the persistence model for the RFP domain entity.
type RFPModel struct {
	OwnedRecord
	Title           string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Category        string          `gorm:"type:varchar(100)"`
	Budget          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency        string          `gorm:"type:varchar(3)"`
	DueDate         *time.Time
	Status          bid.RFPStatus `gorm:"type:varchar(20);not null;index"`
	AwardedVendorID *uuid.UUID    `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (RFPModel) TableName() string {
	return "rfps"
}

// ToDomain converts the persistence model to a domain RFP.
func (m *RFPModel) ToDomain() *bid.RFP {
	return &bid.RFP{
		TenantEntity:    m.ownedEntity(),
		Title:           m.Title,
		Description:     m.Description,
		Category:        m.Category,
		Budget:          m.Budget,
		Currency:        m.Currency,
		DueDate:         m.DueDate,
		Status:          m.Status,
		AwardedVendorID: m.AwardedVendorID,
	}
}

// RFPModelFromDomain creates a new persistence model from a domain RFP.
func RFPModelFromDomain(r *bid.RFP) *RFPModel {
	m := &RFPModel{
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Budget:          r.Budget,
		Currency:        r.Currency,
		DueDate:         r.DueDate,
		Status:          r.Status,
		AwardedVendorID: r.AwardedVendorID,
	}
	m.fillOwned(r.TenantEntity)
	return m
}
