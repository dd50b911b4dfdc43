// Package survey publishes surveys and collects one response per respondent.
package survey

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/survey"
	"go.uber.org/zap"
)

// SurveyService handles survey operations
type SurveyService struct {
	surveys survey.Repository
	vendors partner.VendorRepository
	logger  *zap.Logger
}

// NewSurveyService creates a new SurveyService
func NewSurveyService(surveys survey.Repository, vendors partner.VendorRepository, logger *zap.Logger) *SurveyService {
	return &SurveyService{surveys: surveys, vendors: vendors, logger: logger}
}

// Create publishes an open survey
func (s *SurveyService) Create(ctx context.Context, p identity.Principal, req CreateSurveyRequest) (*SurveyResponse, error) {
	var vendorID *uuid.UUID
	if req.VendorID != nil {
		vendor, err := partner.Referenced(ctx, s.vendors, p.TenantID, *req.VendorID)
		if err != nil {
			return nil, err
		}
		vendorID = &vendor.ID
	}

	questions := make([]survey.Question, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = survey.Question{
			ID:       q.ID,
			Text:     q.Text,
			Kind:     survey.QuestionKind(q.Kind),
			Options:  q.Options,
			Required: q.Required,
		}
	}
	sv, err := survey.NewSurvey(p.TenantID, &p.UserID, req.Title, req.Description, vendorID, questions)
	if err != nil {
		return nil, err
	}
	if err := s.surveys.Create(ctx, sv); err != nil {
		return nil, err
	}
	resp := ToSurveyResponse(sv)
	return &resp, nil
}

// GetByID returns one survey of the caller's tenant
func (s *SurveyService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*SurveyResponse, error) {
	sv, err := s.surveys.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSurveyResponse(sv)
	return &resp, nil
}

// List lists surveys
func (s *SurveyService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[SurveyResponse], error) {
	filter = filter.Normalize()
	items, total, err := s.surveys.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[SurveyResponse]{}, err
	}
	out := make([]SurveyResponse, len(items))
	for i := range items {
		out[i] = ToSurveyResponse(&items[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

// Close stops a survey from accepting responses
func (s *SurveyService) Close(ctx context.Context, p identity.Principal, id uuid.UUID) (*SurveyResponse, error) {
	sv, err := s.surveys.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := sv.Close(); err != nil {
		return nil, err
	}
	if err := s.surveys.Save(ctx, sv); err != nil {
		return nil, err
	}
	resp := ToSurveyResponse(sv)
	return &resp, nil
}

// Respond records the caller's answers. Each user answers a survey once.
func (s *SurveyService) Respond(ctx context.Context, p identity.Principal, id uuid.UUID, req SubmitResponseRequest) (*AnswerSetResponse, error) {
	sv, err := s.surveys.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	r, err := sv.Respond(p.UserID, req.Answers)
	if err != nil {
		return nil, err
	}
	if err := s.surveys.AddResponse(ctx, r); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return nil, shared.NewDomainError(shared.CodeConflict, "you have already answered this survey")
		}
		return nil, err
	}
	resp := ToAnswerSetResponse(r)
	return &resp, nil
}

// Responses lists every response to a survey
func (s *SurveyService) Responses(ctx context.Context, p identity.Principal, id uuid.UUID) ([]AnswerSetResponse, error) {
	if _, err := s.surveys.FindByIDForTenant(ctx, p.TenantID, id); err != nil {
		return nil, err
	}
	items, err := s.surveys.ListResponses(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	out := make([]AnswerSetResponse, len(items))
	for i := range items {
		out[i] = ToAnswerSetResponse(&items[i])
	}
	return out, nil
}
