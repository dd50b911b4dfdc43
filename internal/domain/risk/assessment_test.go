package risk

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func TestNewManualAssessment(t *testing.T) {
	a, err := NewManualAssessment(uuid.New(), nil, uuid.New(), LevelHigh, " late deliveries ")
	require.NoError(t, err)
	assert.Equal(t, SourceManual, a.Source)
	assert.Equal(t, SyncStatusNotApplicable, a.SyncStatus)
	assert.Equal(t, "late deliveries", a.Notes)

	_, err = NewManualAssessment(uuid.New(), nil, uuid.New(), Level("extreme"), "")
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

func TestProviderAssessment_Lifecycle(t *testing.T) {
	a := NewProviderAssessment(uuid.New(), nil, uuid.New(), uuid.New())
	assert.Equal(t, SyncStatusPending, a.SyncStatus)

	a.RecordFailure("provider unavailable")
	assert.Equal(t, SyncStatusFailed, a.SyncStatus)
	assert.Equal(t, "provider unavailable", a.SyncError)

	now := time.Now().UTC()
	a.RecordRating(integration.Rating{Score: 71.5, Grade: "BB", Reference: "r-1"}, now)
	assert.Equal(t, SyncStatusSynced, a.SyncStatus)
	assert.Empty(t, a.SyncError)
	require.NotNil(t, a.ProviderScore)
	assert.Equal(t, 71.5, *a.ProviderScore)
	assert.Equal(t, "BB", a.ProviderGrade)
}

func TestAttachInsight_DoesNotChangeState(t *testing.T) {
	a, err := NewManualAssessment(uuid.New(), nil, uuid.New(), LevelLow, "")
	require.NoError(t, err)

	a.AttachInsight(advisory.Insight{Score: 95, Confidence: 0.9, Recommendation: "escalate to critical"})

	assert.Equal(t, LevelLow, a.Level)
	assert.Equal(t, SyncStatusNotApplicable, a.SyncStatus)
	require.NotNil(t, a.Insight)
}
