package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormIntegrationRepository implements integration.Repository using GORM
type GormIntegrationRepository struct {
	db *gorm.DB
}

// NewGormIntegrationRepository creates a new GormIntegrationRepository
func NewGormIntegrationRepository(db *gorm.DB) *GormIntegrationRepository {
	return &GormIntegrationRepository{db: db}
}

// Create creates a new integration
func (r *GormIntegrationRepository) Create(ctx context.Context, in *integration.Integration) error {
	return translateError(r.db.WithContext(ctx).Create(models.IntegrationModelFromDomain(in)).Error)
}

// Save updates an existing integration
func (r *GormIntegrationRepository) Save(ctx context.Context, in *integration.Integration) error {
	return updateScoped(ctx, r.db, in.TenantID, in.ID, models.IntegrationModelFromDomain(in))
}

// FindByIDForTenant finds an integration by ID within a tenant
func (r *GormIntegrationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*integration.Integration, error) {
	var model models.IntegrationModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists a tenant's integrations
func (r *GormIntegrationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]integration.Integration, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.IntegrationModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != "" {
		query = query.Where("kind = ?", filter.Status)
	}

	var rows []models.IntegrationModel
	total, err := listPage(query, filter, CommonSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]integration.Integration, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// FindEnabled returns the newest enabled integration of kind for the tenant
func (r *GormIntegrationRepository) FindEnabled(ctx context.Context, tenantID uuid.UUID, kind integration.Kind) (*integration.Integration, error) {
	var model models.IntegrationModel
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("kind = ? AND enabled = ?", kind, true).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		err = translateError(err)
		if err == shared.ErrNotFound {
			return nil, integration.ErrNotConfigured
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GormSyncLogRepository implements integration.SyncLogRepository. Insert-only.
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Append inserts one attempt record
func (r *GormSyncLogRepository) Append(ctx context.Context, entry *integration.SyncLog) error {
	return translateError(r.db.WithContext(ctx).Create(models.SyncLogModelFromDomain(entry)).Error)
}

// ListForIntegration returns the newest attempts of one integration
func (r *GormSyncLogRepository) ListForIntegration(ctx context.Context, tenantID, integrationID uuid.UUID, limit int) ([]integration.SyncLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows []models.SyncLogModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("integration_id = ?", integrationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return syncLogsToDomain(rows), nil
}

// ListForResource returns all attempts for one local record in order
func (r *GormSyncLogRepository) ListForResource(ctx context.Context, tenantID uuid.UUID, resourceType string, resourceID uuid.UUID) ([]integration.SyncLog, error) {
	var rows []models.SyncLogModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return syncLogsToDomain(rows), nil
}

func syncLogsToDomain(rows []models.SyncLogModel) []integration.SyncLog {
	out := make([]integration.SyncLog, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
