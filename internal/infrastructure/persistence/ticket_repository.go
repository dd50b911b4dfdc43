package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/helpdesk"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/datascope"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormTicketRepository implements helpdesk.TicketRepository using GORM.
// Vendor users only see the tickets they raised.
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Create creates a new ticket
func (r *GormTicketRepository) Create(ctx context.Context, t *helpdesk.Ticket) error {
	return translateError(r.db.WithContext(ctx).Create(models.TicketModelFromDomain(t)).Error)
}

// Save updates an existing ticket
func (r *GormTicketRepository) Save(ctx context.Context, t *helpdesk.Ticket) error {
	return updateScoped(ctx, r.db, t.TenantID, t.ID, models.TicketModelFromDomain(t))
}

// FindByIDForTenant finds a ticket by ID within a tenant
func (r *GormTicketRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*helpdesk.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID), datascope.Own(ctx)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists tickets
func (r *GormTicketRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]helpdesk.Ticket, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).Scopes(tenant.Scope(tenantID), datascope.Own(ctx))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(subject) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var rows []models.TicketModel
	total, err := listPage(query, filter, TicketSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]helpdesk.Ticket, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// CountUnresolvedForVendor counts tickets about a vendor that are not resolved yet.
// It ignores the caller's data scope; the count feeds tenant-wide risk insights.
func (r *GormTicketRepository) CountUnresolvedForVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("vendor_id = ? AND status IN ?", vendorID,
			[]helpdesk.TicketStatus{helpdesk.TicketStatusOpen, helpdesk.TicketStatusInProgress}).
		Count(&n).Error
	return n, translateError(err)
}
