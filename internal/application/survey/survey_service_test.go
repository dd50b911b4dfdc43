package survey_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsurvey "github.com/vendorhub/backend/internal/application/survey"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/survey"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/testutil"
	"go.uber.org/zap"
)

func TestSurveyService(t *testing.T) {
	db := testutil.NewSQLiteDB(t).DB
	svc := appsurvey.NewSurveyService(persistence.NewGormSurveyRepository(db), persistence.NewGormVendorRepository(db), zap.NewNop())

	admin := testutil.Principal(identity.RoleTenantAdmin)
	evaluator := testutil.PrincipalIn(admin.TenantID, identity.RoleEvaluator)

	sv, err := svc.Create(testutil.Context(admin), admin, appsurvey.CreateSurveyRequest{
		Title: "Supplier satisfaction",
		Questions: []appsurvey.QuestionRequest{
			{ID: "q1", Text: "Delivery reliability", Kind: "rating", Required: true},
			{ID: "q2", Text: "Preferred channel", Kind: "choice", Options: []string{"email", "portal"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, survey.StatusOpen, sv.Status)
	require.Len(t, sv.Questions, 2)

	ctx := testutil.Context(evaluator)

	_, err = svc.Respond(ctx, evaluator, sv.ID, appsurvey.SubmitResponseRequest{Answers: map[string]any{"q1": 7.0}})
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	r, err := svc.Respond(ctx, evaluator, sv.ID, appsurvey.SubmitResponseRequest{Answers: map[string]any{"q1": 4.0, "q2": "portal"}})
	require.NoError(t, err)
	assert.Equal(t, evaluator.UserID, r.RespondentID)

	_, err = svc.Respond(ctx, evaluator, sv.ID, appsurvey.SubmitResponseRequest{Answers: map[string]any{"q1": 5.0}})
	assert.Equal(t, shared.CodeConflict, shared.CodeOf(err), "one response per respondent")

	responses, err := svc.Responses(testutil.Context(admin), admin, sv.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	// stored answers decode as json.Number and serialize back as numbers
	assert.Equal(t, json.Number("4"), responses[0].Answers["q1"])
	raw, err := json.Marshal(responses[0].Answers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q1": 4, "q2": "portal"}`, string(raw))

	closed, err := svc.Close(testutil.Context(admin), admin, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, survey.StatusClosed, closed.Status)

	_, err = svc.Respond(testutil.Context(admin), admin, sv.ID, appsurvey.SubmitResponseRequest{Answers: map[string]any{"q1": 3.0}})
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err))

	other := testutil.Principal(identity.RoleTenantAdmin)
	_, err = svc.Responses(testutil.Context(other), other, sv.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
