package survey

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/survey"
)

// QuestionRequest is one question of a new survey
type QuestionRequest struct {
	ID       string   `json:"id" binding:"required,max=50"`
	Text     string   `json:"text" binding:"required,max=1000"`
	Kind     string   `json:"kind" binding:"required,oneof=rating text choice"`
	Options  []string `json:"options" binding:"omitempty,max=20,dive,min=1,max=200"`
	Required bool     `json:"required"`
}

// CreateSurveyRequest represents a request to publish a survey
type CreateSurveyRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=4000"`
	VendorID    *uuid.UUID        `json:"vendor_id"`
	Questions   []QuestionRequest `json:"questions" binding:"required,min=1,max=50,dive"`
}

// SubmitResponseRequest carries answers keyed by question id
type SubmitResponseRequest struct {
	Answers map[string]any `json:"answers" binding:"required"`
}

// SurveyResponse represents a survey in API responses
type SurveyResponse struct {
	ID          uuid.UUID         `json:"id"`
	TenantID    uuid.UUID         `json:"tenant_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	VendorID    *uuid.UUID        `json:"vendor_id,omitempty"`
	Questions   []survey.Question `json:"questions"`
	Status      survey.Status     `json:"status"`
	CreatedBy   *uuid.UUID        `json:"created_by,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// AnswerSetResponse represents one respondent's answers
type AnswerSetResponse struct {
	ID           uuid.UUID      `json:"id"`
	SurveyID     uuid.UUID      `json:"survey_id"`
	RespondentID uuid.UUID      `json:"respondent_id"`
	Answers      map[string]any `json:"answers"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}

// ToSurveyResponse converts a domain survey to a response DTO
func ToSurveyResponse(s *survey.Survey) SurveyResponse {
	return SurveyResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Title:       s.Title,
		Description: s.Description,
		VendorID:    s.VendorID,
		Questions:   s.Questions,
		Status:      s.Status,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToAnswerSetResponse converts a domain survey response
func ToAnswerSetResponse(r *survey.Response) AnswerSetResponse {
	return AnswerSetResponse{
		ID:           r.ID,
		SurveyID:     r.SurveyID,
		RespondentID: r.RespondentID,
		Answers:      r.Answers,
		SubmittedAt:  r.SubmittedAt,
	}
}
