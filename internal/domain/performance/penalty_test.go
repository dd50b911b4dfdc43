package performance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewPenalty_AISuggestedStaysPending(t *testing.T) {
	p, err := NewPenalty(uuid.New(), nil, uuid.New(), nil, "late delivery", "eur", nil, true, decimalPtr("250"))
	require.NoError(t, err)

	assert.Equal(t, PenaltyStatusPending, p.Status)
	assert.Nil(t, p.Amount)
	assert.Equal(t, "250", p.SuggestedAmount.String())

	p.AttachInsight(advisory.Insight{Score: 90, Confidence: 0.95, Recommendation: "approve"})
	assert.Equal(t, PenaltyStatusPending, p.Status)
	assert.Nil(t, p.Amount)
}

func TestPenalty_Approve(t *testing.T) {
	approver := uuid.New()

	t.Run("requires an amount", func(t *testing.T) {
		p, err := NewPenalty(uuid.New(), nil, uuid.New(), nil, "late", "EUR", nil, true, decimalPtr("250"))
		require.NoError(t, err)

		err = p.Approve(approver, nil, "")
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
		assert.Equal(t, PenaltyStatusPending, p.Status)
	})

	t.Run("explicit amount", func(t *testing.T) {
		p, err := NewPenalty(uuid.New(), nil, uuid.New(), nil, "late", "EUR", nil, true, decimalPtr("250"))
		require.NoError(t, err)

		require.NoError(t, p.Approve(approver, decimalPtr("200"), "agreed"))
		assert.Equal(t, PenaltyStatusApproved, p.Status)
		assert.Equal(t, "200", p.Amount.String())
		assert.Equal(t, approver, *p.DecidedBy)
		assert.NotNil(t, p.DecidedAt)
	})

	t.Run("proposed amount", func(t *testing.T) {
		p, err := NewPenalty(uuid.New(), nil, uuid.New(), nil, "late", "EUR", decimalPtr("100"), false, nil)
		require.NoError(t, err)
		require.NoError(t, p.Approve(approver, nil, ""))
		assert.Equal(t, "100", p.Amount.String())
	})

	t.Run("already decided", func(t *testing.T) {
		p, err := NewPenalty(uuid.New(), nil, uuid.New(), nil, "late", "EUR", decimalPtr("100"), false, nil)
		require.NoError(t, err)
		require.NoError(t, p.Reject(approver, "no"))

		err = p.Approve(approver, nil, "")
		assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err))
		assert.Equal(t, PenaltyStatusRejected, p.Status)
	})
}
