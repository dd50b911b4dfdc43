package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/procurement"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements procurement.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// Create commits a new purchase order
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, po *procurement.PurchaseOrder) error {
	model, err := models.PurchaseOrderModelFromDomain(po)
	if err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// FindByIDForTenant finds a purchase order by ID within a tenant
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAllForTenant lists purchase orders. Search matches the order number.
func (r *GormPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(number) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var rows []models.PurchaseOrderModel
	total, err := listPage(query, filter, PurchaseOrderSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]procurement.PurchaseOrder, 0, len(rows))
	for i := range rows {
		po, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *po)
	}
	return out, total, nil
}

// UpdateStatus writes the business status only
func (r *GormPurchaseOrderRepository) UpdateStatus(ctx context.Context, po *procurement.PurchaseOrder) error {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseOrderModel{}).
		Scopes(tenant.Scope(po.TenantID)).
		Where("id = ?", po.ID).
		Updates(map[string]any{"status": po.Status, "updated_at": po.UpdatedAt})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClaimSync takes the per-record sync claim with a single conditional update
func (r *GormPurchaseOrderRepository) ClaimSync(ctx context.Context, tenantID, id, token, integrationID uuid.UUID, now, staleBefore time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseOrderModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		Where(
			r.db.Where("erp_sync_status IN ?", integration.Claimable()).
				Or("erp_sync_status IN ? AND (erp_claimed_at IS NULL OR erp_claimed_at < ?)",
					[]integration.SyncStatus{integration.SyncStatusSyncing, integration.SyncStatusRetrying}, staleBefore),
		).
		UpdateColumns(map[string]any{
			"erp_sync_status":    integration.SyncStatusSyncing,
			"erp_integration_id": integrationID,
			"erp_sync_claim":     token,
			"erp_claimed_at":     now,
		})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// UpdateSync writes sync columns while token holds the claim
func (r *GormPurchaseOrderRepository) UpdateSync(ctx context.Context, tenantID, id, token uuid.UUID, update procurement.SyncUpdate) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseOrderModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND erp_sync_claim = ?", id, token).
		UpdateColumns(models.SyncColumns(update.State, update.ReleaseClaim))
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}
