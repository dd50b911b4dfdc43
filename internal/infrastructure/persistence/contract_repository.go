package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/contract"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormContractRepository implements contract.Repository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// Create creates a new contract
func (r *GormContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	return translateError(r.db.WithContext(ctx).Create(models.ContractModelFromDomain(c)).Error)
}

// Save updates an existing contract
func (r *GormContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	return updateScoped(ctx, r.db, c.TenantID, c.ID, models.ContractModelFromDomain(c))
}

// FindByIDForTenant finds a contract by ID within a tenant
func (r *GormContractRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*contract.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists contracts
func (r *GormContractRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]contract.Contract, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(number) LIKE ?)", like, like)
	}

	var rows []models.ContractModel
	total, err := listPage(query, filter, ContractSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]contract.Contract, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}
