package tenant

import (
	"github.com/vendorhub/backend/internal/domain/identity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// guardHooks maps each guarded processor to the gorm callback the guard
// runs before. Creates are absent: repositories stamp tenant_id on the entity
// from the principal.
var guardHooks = []struct {
	op     string
	before string
}{
	{"query", "gorm:query"},
	{"update", "gorm:update"},
	{"delete", "gorm:delete"},
	{"row", "gorm:row"},
}

func hookName(op string) string {
	return "tenant:guard_" + op
}

func registerHook(db *gorm.DB, op, before string, fn func(*gorm.DB)) error {
	name := hookName(op)
	switch op {
	case "query":
		return db.Callback().Query().Before(before).Register(name, fn)
	case "update":
		return db.Callback().Update().Before(before).Register(name, fn)
	case "delete":
		return db.Callback().Delete().Before(before).Register(name, fn)
	default:
		return db.Callback().Row().Before(before).Register(name, fn)
	}
}

func removeHook(db *gorm.DB, op string) error {
	name := hookName(op)
	switch op {
	case "query":
		return db.Callback().Query().Remove(name)
	case "update":
		return db.Callback().Update().Remove(name)
	case "delete":
		return db.Callback().Delete().Remove(name)
	default:
		return db.Callback().Row().Remove(name)
	}
}

// principalGuard scopes statements on tenant-owned tables to the tenant of
// the principal carried by the statement context
type principalGuard struct {
	column   string
	required bool
}

func (g principalGuard) apply(db *gorm.DB) {
	stmt := db.Statement
	if stmt.Context == nil || stmt.Unscoped || !g.tenantOwned(stmt) || g.alreadyScoped(stmt) {
		return
	}

	p, ok := identity.PrincipalFromContext(stmt.Context)
	if !ok {
		if g.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return
	}
	stmt.AddClause(clause.Where{Exprs: []clause.Expression{clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: g.column},
		Value:  p.TenantID,
	}}})
}

func (g principalGuard) tenantOwned(stmt *gorm.Statement) bool {
	return stmt.Schema != nil && stmt.Schema.LookUpField(g.column) != nil
}

func (g principalGuard) alreadyScoped(stmt *gorm.Statement) bool {
	c, ok := stmt.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := c.Expression.(clause.Where)
	return ok && g.mentionsColumn(where.Exprs)
}

func (g principalGuard) mentionsColumn(exprs []clause.Expression) bool {
	for _, expr := range exprs {
		switch e := expr.(type) {
		case clause.Eq:
			switch col := e.Column.(type) {
			case clause.Column:
				if col.Name == g.column {
					return true
				}
			case string:
				if col == g.column {
					return true
				}
			}
		case clause.AndConditions:
			if g.mentionsColumn(e.Exprs) {
				return true
			}
		}
	}
	return false
}

// EnableAutoTenantFilter installs the principal guard on db. With required
// set, a statement on a tenant-owned table without a principal fails with
// ErrTenantIDRequired instead of running unscoped.
func EnableAutoTenantFilter(db *gorm.DB, required bool) error {
	guard := principalGuard{column: Column, required: required}
	for _, h := range guardHooks {
		if err := registerHook(db, h.op, h.before, guard.apply); err != nil {
			return err
		}
	}
	return nil
}

// DisableAutoTenantFilter removes the principal guard
func DisableAutoTenantFilter(db *gorm.DB) error {
	for _, h := range guardHooks {
		if err := removeHook(db, h.op); err != nil {
			return err
		}
	}
	return nil
}
