package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/risk"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormRiskAssessmentRepository implements risk.AssessmentRepository using GORM
type GormRiskAssessmentRepository struct {
	db *gorm.DB
}

// NewGormRiskAssessmentRepository creates a new GormRiskAssessmentRepository
func NewGormRiskAssessmentRepository(db *gorm.DB) *GormRiskAssessmentRepository {
	return &GormRiskAssessmentRepository{db: db}
}

// Create creates a new assessment
func (r *GormRiskAssessmentRepository) Create(ctx context.Context, a *risk.Assessment) error {
	model, err := models.RiskAssessmentModelFromDomain(a)
	if err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// Save updates an existing assessment
func (r *GormRiskAssessmentRepository) Save(ctx context.Context, a *risk.Assessment) error {
	model, err := models.RiskAssessmentModelFromDomain(a)
	if err != nil {
		return err
	}
	return updateScoped(ctx, r.db, a.TenantID, a.ID, model)
}

// FindByIDForTenant finds an assessment by ID within a tenant
func (r *GormRiskAssessmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*risk.Assessment, error) {
	var model models.RiskAssessmentModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAllForTenant lists assessments, optionally for one vendor
func (r *GormRiskAssessmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, vendorID *uuid.UUID, filter shared.Filter) ([]risk.Assessment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RiskAssessmentModel{}).Scopes(tenant.Scope(tenantID))
	if vendorID != nil {
		query = query.Where("vendor_id = ?", *vendorID)
	}
	if filter.Status != "" {
		query = query.Where("sync_status = ?", filter.Status)
	}

	var rows []models.RiskAssessmentModel
	total, err := listPage(query, filter, CommonSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]risk.Assessment, 0, len(rows))
	for i := range rows {
		a, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *a)
	}
	return out, total, nil
}
