package models

import (
	"github.com/vendorhub/backend/internal/domain/partner"
)

// VendorModel is the persistence model for the Vendor domain entity.
type VendorModel struct {
	OwnedRecord
	Code         string               `gorm:"type:varchar(50);not null"`
	Name         string               `gorm:"type:varchar(200);not null"`
	Category     string               `gorm:"type:varchar(100)"`
	ContactEmail string               `gorm:"type:varchar(200)"`
	Country      string               `gorm:"type:varchar(2)"`
	RatingRef    string               `gorm:"type:varchar(100)"`
	ERPRef       string               `gorm:"column:erp_ref;type:varchar(100)"`
	Status       partner.VendorStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		TenantEntity: m.ownedEntity(),
		Code:         m.Code,
		Name:         m.Name,
		Category:     m.Category,
		ContactEmail: m.ContactEmail,
		Country:      m.Country,
		RatingRef:    m.RatingRef,
		ERPRef:       m.ERPRef,
		Status:       m.Status,
	}
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor entity.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{
		Code:         v.Code,
		Name:         v.Name,
		Category:     v.Category,
		ContactEmail: v.ContactEmail,
		Country:      v.Country,
		RatingRef:    v.RatingRef,
		ERPRef:       v.ERPRef,
		Status:       v.Status,
	}
	m.fillOwned(v.TenantEntity)
	return m
}
