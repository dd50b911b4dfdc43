// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free from
// ORM concerns.
//
// Each model has ToDomain and FromDomain mappers. Tenant-owned models embed
// OwnedRecord, whose tenant_id column is what every repository filters on.
package models
