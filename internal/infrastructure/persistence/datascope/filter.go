// Package datascope narrows tenant-scoped queries further by the caller's role.
//
// External vendor users share a tenant with the staff that manage them but may
// only see the records they created themselves. Staff roles see the whole tenant.
//
// Usage:
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID), datascope.Own(ctx)).Find(&tickets)
package datascope

import (
	"context"

	"github.com/vendorhub/backend/internal/domain/identity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnerColumn records who created a row
const OwnerColumn = "created_by"

// restricted lists roles limited to their own records
var restricted = map[identity.Role]bool{
	identity.RoleVendorUser: true,
}

// Restricted reports whether role only sees its own records
func Restricted(role identity.Role) bool {
	return restricted[role]
}

// Own returns a scope that limits restricted roles to rows they created.
// Without a principal in ctx it applies no extra filter; tenant scoping still applies.
func Own(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p, ok := identity.PrincipalFromContext(ctx)
		if !ok || !Restricted(p.Role) {
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: OwnerColumn},
			Value:  p.UserID,
		})
	}
}
