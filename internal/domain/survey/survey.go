package survey

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Status of a survey
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// QuestionKind determines how an answer is validated
type QuestionKind string

const (
	QuestionRating QuestionKind = "rating" // integer 1-5
	QuestionText   QuestionKind = "text"
	QuestionChoice QuestionKind = "choice"
)

// Question is one survey item
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Kind     QuestionKind `json:"kind"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`
}

// Survey collects feedback, typically about a vendor
type Survey struct {
	shared.TenantEntity
	Title       string
	Description string
	VendorID    *uuid.UUID
	Questions   []Question
	Status      Status
}

// NewSurvey creates an open survey
func NewSurvey(tenantID uuid.UUID, createdBy *uuid.UUID, title, description string, vendorID *uuid.UUID, questions []Question) (*Survey, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewValidationError("title", "is required")
	}
	if len(questions) == 0 {
		return nil, shared.NewValidationError("questions", "at least one question is required")
	}
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.ID == "" || seen[q.ID] {
			return nil, shared.NewValidationError(field+".id", "must be present and unique")
		}
		seen[q.ID] = true
		switch q.Kind {
		case QuestionRating, QuestionText:
		case QuestionChoice:
			if len(q.Options) < 2 {
				return nil, shared.NewValidationError(field+".options", "choice questions need at least two options")
			}
		default:
			return nil, shared.NewValidationError(field+".kind", "must be one of rating, text, choice")
		}
	}
	return &Survey{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		Title:        title,
		Description:  description,
		VendorID:     vendorID,
		Questions:    questions,
		Status:       StatusOpen,
	}, nil
}

// Close stops accepting responses
func (s *Survey) Close() error {
	if s.Status == StatusClosed {
		return shared.NewDomainError(shared.CodeInvalidState, "survey already closed")
	}
	s.Status = StatusClosed
	s.Touch()
	return nil
}

// Response is one respondent's answers to a survey
type Response struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	SurveyID     uuid.UUID
	RespondentID uuid.UUID
	Answers      map[string]any
	SubmittedAt  time.Time
}

// Respond validates answers against the questions and builds a response
func (s *Survey) Respond(respondentID uuid.UUID, answers map[string]any) (*Response, error) {
	if s.Status != StatusOpen {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "survey is not accepting responses")
	}
	for key := range answers {
		if !slices.ContainsFunc(s.Questions, func(q Question) bool { return q.ID == key }) {
			return nil, shared.NewValidationError("answers."+key, "unknown question")
		}
	}
	for _, q := range s.Questions {
		v, ok := answers[q.ID]
		if !ok || v == nil {
			if q.Required {
				return nil, shared.NewValidationError("answers."+q.ID, "is required")
			}
			continue
		}
		if err := validateAnswer(q, v); err != nil {
			return nil, err
		}
	}
	return &Response{
		ID:           uuid.New(),
		TenantID:     s.TenantID,
		SurveyID:     s.ID,
		RespondentID: respondentID,
		Answers:      answers,
		SubmittedAt:  time.Now().UTC(),
	}, nil
}

func validateAnswer(q Question, v any) error {
	field := "answers." + q.ID
	switch q.Kind {
	case QuestionRating:
		// JSON numbers decode as float64
		n, ok := v.(float64)
		if !ok || n != float64(int(n)) || n < 1 || n > 5 {
			return shared.NewValidationError(field, "must be an integer from 1 to 5")
		}
	case QuestionText:
		s, ok := v.(string)
		if !ok || len(s) > 4000 {
			return shared.NewValidationError(field, "must be text up to 4000 characters")
		}
	case QuestionChoice:
		s, ok := v.(string)
		if !ok || !slices.Contains(q.Options, s) {
			return shared.NewValidationError(field, "must be one of the options")
		}
	}
	return nil
}
