package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/contract"
)

// ContractModel is the persistence model for the Contract domain entity.
type ContractModel struct {
	OwnedRecord
	VendorID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number    string          `gorm:"type:varchar(50);not null"`
	Title     string          `gorm:"type:varchar(200);not null"`
	Value     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency  string          `gorm:"type:varchar(3)"`
	StartDate time.Time       `gorm:"not null"`
	EndDate   time.Time       `gorm:"not null"`
	Terms     string          `gorm:"type:text"`
	Status    contract.Status `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract.
func (m *ContractModel) ToDomain() *contract.Contract {
	return &contract.Contract{
		TenantEntity: m.ownedEntity(),
		VendorID:     m.VendorID,
		Number:       m.Number,
		Title:        m.Title,
		Value:        m.Value,
		Currency:     m.Currency,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Terms:        m.Terms,
		Status:       m.Status,
	}
}

// ContractModelFromDomain creates a new persistence model from a domain Contract.
func ContractModelFromDomain(c *contract.Contract) *ContractModel {
	m := &ContractModel{
		VendorID:  c.VendorID,
		Number:    c.Number,
		Title:     c.Title,
		Value:     c.Value,
		Currency:  c.Currency,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Terms:     c.Terms,
		Status:    c.Status,
	}
	m.fillOwned(c.TenantEntity)
	return m
}
