package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	Record
	Code        string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                `gorm:"type:varchar(200);not null"`
	Region      string                `gorm:"type:varchar(50)"`
	HostingMode identity.HostingMode  `gorm:"type:varchar(20);not null;default:'shared'"`
	Status      identity.TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity:  m.Record.entity(),
		Code:        m.Code,
		Name:        m.Name,
		Region:      m.Region,
		HostingMode: m.HostingMode,
		Status:      m.Status,
	}
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{
		Code:        t.Code,
		Name:        t.Name,
		Region:      t.Region,
		HostingMode: t.HostingMode,
		Status:      t.Status,
	}
	m.fillRecord(t.BaseEntity)
	return m
}

// UserModel is the persistence model for the User domain entity.
// tenant_id is immutable after creation; email is unique per tenant.
type UserModel struct {
	Record
	TenantID     uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_users_tenant_email,priority:1"`
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_tenant_email,priority:2"`
	DisplayName  string              `gorm:"type:varchar(200)"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	Role         identity.Role       `gorm:"type:varchar(30);not null"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.Record.entity(),
		TenantID:     m.TenantID,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Status:       m.Status,
		LastLoginAt:  m.LastLoginAt,
	}
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		TenantID:     u.TenantID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Status:       u.Status,
		LastLoginAt:  u.LastLoginAt,
	}
	m.fillRecord(u.BaseEntity)
	return m
}
