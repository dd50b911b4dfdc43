package survey

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func newSurvey(t *testing.T) *Survey {
	t.Helper()
	s, err := NewSurvey(uuid.New(), nil, "Q3 vendor review", "", nil, []Question{
		{ID: "quality", Text: "Quality", Kind: QuestionRating, Required: true},
		{ID: "again", Text: "Order again?", Kind: QuestionChoice, Options: []string{"yes", "no"}},
		{ID: "notes", Text: "Notes", Kind: QuestionText},
	})
	require.NoError(t, err)
	return s
}

func TestNewSurvey_Validation(t *testing.T) {
	_, err := NewSurvey(uuid.New(), nil, "t", "", nil, []Question{
		{ID: "a", Kind: QuestionRating},
		{ID: "a", Kind: QuestionText},
	})
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	_, err = NewSurvey(uuid.New(), nil, "t", "", nil, []Question{{ID: "a", Kind: QuestionChoice, Options: []string{"only"}}})
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

func TestSurvey_Respond(t *testing.T) {
	s := newSurvey(t)
	respondent := uuid.New()

	tests := []struct {
		name    string
		answers map[string]any
		ok      bool
	}{
		{"valid", map[string]any{"quality": float64(4), "again": "yes"}, true},
		{"missing required", map[string]any{"again": "no"}, false},
		{"rating out of range", map[string]any{"quality": float64(6)}, false},
		{"fractional rating", map[string]any{"quality": 3.5}, false},
		{"unknown option", map[string]any{"quality": float64(3), "again": "maybe"}, false},
		{"unknown question", map[string]any{"quality": float64(3), "extra": "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Respond(respondent, tt.answers)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, s.ID, r.SurveyID)
				assert.Equal(t, s.TenantID, r.TenantID)
			} else {
				assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
			}
		})
	}
}

func TestSurvey_ClosedRejectsResponses(t *testing.T) {
	s := newSurvey(t)
	require.NoError(t, s.Close())

	_, err := s.Respond(uuid.New(), map[string]any{"quality": float64(5)})
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err))
	assert.Error(t, s.Close())
}
