package persistence

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSortColumn = "created_at"

// sortable lists the columns a listing may be ordered by. Anything else the
// client sends falls back to created_at, so sort input never reaches SQL as
// text.
type sortable []string

var CommonSortFields = sortable{"created_at", "updated_at"}

var (
	VendorSortFields        = CommonSortFields.with("code", "name", "category", "status")
	PurchaseOrderSortFields = CommonSortFields.with("number", "amount", "status", "erp_sync_status")
	ContractSortFields      = CommonSortFields.with("number", "title", "value", "start_date", "end_date", "status")
	RFPSortFields           = CommonSortFields.with("title", "budget", "due_date", "status")
	TicketSortFields        = CommonSortFields.with("subject", "priority", "status")
	UserSortFields          = CommonSortFields.with("email", "display_name", "role", "status", "last_login_at")
)

func (s sortable) with(columns ...string) sortable {
	return append(slices.Clone(s), columns...)
}

// column returns the requested column when allowed, else created_at
func (s sortable) column(requested string) string {
	requested = strings.TrimSpace(requested)
	if slices.Contains(s, requested) {
		return requested
	}
	return defaultSortColumn
}

// orderBy builds the ORDER BY term; anything but "asc" sorts newest first
func (s sortable) orderBy(sortBy, sortOrder string) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: s.column(sortBy)},
		Desc:   !strings.EqualFold(strings.TrimSpace(sortOrder), "asc"),
	}
}

// listPage counts the filtered query, then orders and pages it into dest
func listPage(query *gorm.DB, filter shared.Filter, columns sortable, dest any) (int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, translateError(err)
	}
	if total == 0 {
		return 0, nil
	}

	err := query.
		Order(columns.orderBy(filter.SortBy, filter.SortOrder)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(dest).Error
	if err != nil {
		return 0, translateError(err)
	}
	return total, nil
}

// translateError maps storage errors onto domain errors. Other driver
// errors pass through and surface as INTERNAL_ERROR.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInvalidReference
	}
	return err
}

// updateScoped rewrites the mutable columns of a tenant-owned row. Ownership
// and creation columns stay untouched; a row of another tenant reads as not
// found.
func updateScoped(ctx context.Context, db *gorm.DB, tenantID, id uuid.UUID, model any) error {
	if id == uuid.Nil {
		return shared.ErrNotFound
	}
	result := db.WithContext(ctx).
		Model(model).
		Scopes(tenant.Scope(tenantID)).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
