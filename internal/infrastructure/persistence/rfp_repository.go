package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/bid"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormRFPRepository implements bid.RFPRepository using GORM
type GormRFPRepository struct {
	db *gorm.DB
}

// NewGormRFPRepository creates a new GormRFPRepository
func NewGormRFPRepository(db *gorm.DB) *GormRFPRepository {
	return &GormRFPRepository{db: db}
}

// Create creates a new RFP
func (r *GormRFPRepository) Create(ctx context.Context, rfp *bid.RFP) error {
	return translateError(r.db.WithContext(ctx).Create(models.RFPModelFromDomain(rfp)).Error)
}

// Save updates an existing RFP
func (r *GormRFPRepository) Save(ctx context.Context, rfp *bid.RFP) error {
	return updateScoped(ctx, r.db, rfp.TenantID, rfp.ID, models.RFPModelFromDomain(rfp))
}

// FindByIDForTenant finds an RFP by ID within a tenant
func (r *GormRFPRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*bid.RFP, error) {
	var model models.RFPModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists RFPs
func (r *GormRFPRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]bid.RFP, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RFPModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var rows []models.RFPModel
	total, err := listPage(query, filter, RFPSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]bid.RFP, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}
