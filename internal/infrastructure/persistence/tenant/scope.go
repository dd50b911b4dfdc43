// Package tenant provides multi-tenant database scoping for GORM.
//
// Repositories apply Scope explicitly with the tenant id taken from the resolved
// principal. The callback registered by EnableAutoTenantFilter is a second line
// of defence: any query on a table with a tenant_id column that reaches the
// database without a tenant condition gets one from the request context.
//
// Usage:
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Find(&vendors)
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the tenant column shared by every tenant-owned table
const Column = "tenant_id"

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// Scope applies tenant filtering to GORM queries. A nil tenant id matches nothing.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: Column},
			Value:  tenantID,
		})
	}
}

// FromContext returns the tenant id of the resolved principal in ctx
func FromContext(ctx context.Context) (uuid.UUID, error) {
	p, ok := identity.PrincipalFromContext(ctx)
	if !ok || p.TenantID == uuid.Nil {
		return uuid.Nil, ErrTenantIDRequired
	}
	return p.TenantID, nil
}
