package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Record carries the identity and timestamps every table has
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (r *Record) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (r *Record) fillRecord(e shared.BaseEntity) {
	*r = Record{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// OwnedRecord is a Record that belongs to one tenant. tenant_id is what the
// tenant guard and tenant.Scope filter on.
type OwnedRecord struct {
	Record
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}

func (r *OwnedRecord) fillOwned(e shared.TenantEntity) {
	r.fillRecord(e.BaseEntity)
	r.TenantID = e.TenantID
	r.CreatedBy = e.CreatedBy
}

func (r *OwnedRecord) ownedEntity() shared.TenantEntity {
	return shared.TenantEntity{BaseEntity: r.entity(), TenantID: r.TenantID, CreatedBy: r.CreatedBy}
}
