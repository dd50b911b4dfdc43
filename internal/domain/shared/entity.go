package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps UpdatedAt
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// TenantEntity is a record owned by exactly one tenant.
// TenantID is assigned once at construction from the authenticated context.
type TenantEntity struct {
	BaseEntity
	TenantID  uuid.UUID
	CreatedBy *uuid.UUID
}

// NewTenantEntity creates a tenant-owned entity
func NewTenantEntity(tenantID uuid.UUID, createdBy *uuid.UUID) TenantEntity {
	return TenantEntity{
		BaseEntity: NewBaseEntity(),
		TenantID:   tenantID,
		CreatedBy:  createdBy,
	}
}
