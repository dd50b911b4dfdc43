package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/survey"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormSurveyRepository implements survey.Repository using GORM
type GormSurveyRepository struct {
	db *gorm.DB
}

// NewGormSurveyRepository creates a new GormSurveyRepository
func NewGormSurveyRepository(db *gorm.DB) *GormSurveyRepository {
	return &GormSurveyRepository{db: db}
}

// Create creates a new survey
func (r *GormSurveyRepository) Create(ctx context.Context, s *survey.Survey) error {
	model, err := models.SurveyModelFromDomain(s)
	if err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// Save updates an existing survey
func (r *GormSurveyRepository) Save(ctx context.Context, s *survey.Survey) error {
	model, err := models.SurveyModelFromDomain(s)
	if err != nil {
		return err
	}
	return updateScoped(ctx, r.db, s.TenantID, s.ID, model)
}

// FindByIDForTenant finds a survey by ID within a tenant
func (r *GormSurveyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*survey.Survey, error) {
	var model models.SurveyModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAllForTenant lists surveys
func (r *GormSurveyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]survey.Survey, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SurveyModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var rows []models.SurveyModel
	total, err := listPage(query, filter, CommonSortFields, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]survey.Survey, 0, len(rows))
	for i := range rows {
		s, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	return out, total, nil
}

// AddResponse stores one response; a second one from the same respondent is a CONFLICT
func (r *GormSurveyRepository) AddResponse(ctx context.Context, resp *survey.Response) error {
	return translateError(r.db.WithContext(ctx).Create(models.SurveyResponseModelFromDomain(resp)).Error)
}

// ListResponses returns the responses of a survey in submission order
func (r *GormSurveyRepository) ListResponses(ctx context.Context, tenantID, surveyID uuid.UUID) ([]survey.Response, error) {
	var rows []models.SurveyResponseModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("survey_id = ?", surveyID).
		Order("submitted_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]survey.Response, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}
