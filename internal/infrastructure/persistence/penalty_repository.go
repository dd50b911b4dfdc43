package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/performance"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormPenaltyRepository implements performance.PenaltyRepository using GORM
type GormPenaltyRepository struct {
	db *gorm.DB
}

// NewGormPenaltyRepository creates a new GormPenaltyRepository
func NewGormPenaltyRepository(db *gorm.DB) *GormPenaltyRepository {
	return &GormPenaltyRepository{db: db}
}

// Create creates a new penalty
func (r *GormPenaltyRepository) Create(ctx context.Context, p *performance.Penalty) error {
	model, err := models.PenaltyModelFromDomain(p)
	if err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// Save updates an existing penalty
func (r *GormPenaltyRepository) Save(ctx context.Context, p *performance.Penalty) error {
	model, err := models.PenaltyModelFromDomain(p)
	if err != nil {
		return err
	}
	return updateScoped(ctx, r.db, p.TenantID, p.ID, model)
}

// FindByIDForTenant finds a penalty by ID within a tenant
func (r *GormPenaltyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*performance.Penalty, error) {
	var model models.PenaltyModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAllForTenant lists penalties
func (r *GormPenaltyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]performance.Penalty, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PenaltyModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var rows []models.PenaltyModel
	total, err := listPage(query, filter, CommonSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]performance.Penalty, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, nil
}

// CountApprovedForVendor counts approved penalties for a vendor
func (r *GormPenaltyRepository) CountApprovedForVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.PenaltyModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("vendor_id = ? AND status = ?", vendorID, performance.PenaltyStatusApproved).
		Count(&n).Error
	return n, translateError(err)
}
