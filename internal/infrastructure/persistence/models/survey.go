package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/survey"
	"gorm.io/datatypes"
)

// SurveyModel is the persistence model for surveys.
type SurveyModel struct {
	OwnedRecord
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	VendorID    *uuid.UUID     `gorm:"type:uuid"`
	Questions   datatypes.JSON `gorm:"type:jsonb;not null"`
	Status      survey.Status  `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (SurveyModel) TableName() string {
	return "surveys"
}

// ToDomain converts the persistence model to a domain Survey.
func (m *SurveyModel) ToDomain() (*survey.Survey, error) {
	var questions []survey.Question
	if err := json.Unmarshal(m.Questions, &questions); err != nil {
		return nil, fmt.Errorf("decode questions of survey %s: %w", m.ID, err)
	}
	return &survey.Survey{
		TenantEntity: m.ownedEntity(),
		Title:        m.Title,
		Description:  m.Description,
		VendorID:     m.VendorID,
		Questions:    questions,
		Status:       m.Status,
	}, nil
}

// SurveyModelFromDomain creates a new persistence model from a domain Survey.
func SurveyModelFromDomain(s *survey.Survey) (*SurveyModel, error) {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	m := &SurveyModel{
		Title:       s.Title,
		Description: s.Description,
		VendorID:    s.VendorID,
		Questions:   datatypes.JSON(questions),
		Status:      s.Status,
	}
	m.fillOwned(s.TenantEntity)
	return m, nil
}

// SurveyResponseModel is the persistence model for survey responses.
// One response per respondent per survey.
type SurveyResponseModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	SurveyID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_survey_responses_respondent,priority:1"`
	RespondentID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_survey_responses_respondent,priority:2"`
	Answers      datatypes.JSONMap `gorm:"type:jsonb;not null"`
	SubmittedAt  time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SurveyResponseModel) TableName() string {
	return "survey_responses"
}

// ToDomain converts the persistence model to a domain Response.
func (m *SurveyResponseModel) ToDomain() survey.Response {
	return survey.Response{
		ID:           m.ID,
		TenantID:     m.TenantID,
		SurveyID:     m.SurveyID,
		RespondentID: m.RespondentID,
		Answers:      map[string]any(m.Answers),
		SubmittedAt:  m.SubmittedAt,
	}
}

// SurveyResponseModelFromDomain creates a new persistence model from a domain Response.
func SurveyResponseModelFromDomain(r *survey.Response) *SurveyResponseModel {
	return &SurveyResponseModel{
		ID:           r.ID,
		TenantID:     r.TenantID,
		SurveyID:     r.SurveyID,
		RespondentID: r.RespondentID,
		Answers:      datatypes.JSONMap(r.Answers),
		SubmittedAt:  r.SubmittedAt,
	}
}
