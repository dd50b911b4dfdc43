package helpdesk

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket(uuid.New(), nil, "Invoice mismatch", "", "billing", "", nil)
	require.NoError(t, err)
	assert.Equal(t, PriorityNormal, tk.Priority)
	assert.Equal(t, TicketStatusOpen, tk.Status)

	_, err = NewTicket(uuid.New(), nil, "x", "", "", Priority("p0"), nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

func TestTicket_Reopen(t *testing.T) {
	tk, err := NewTicket(uuid.New(), nil, "Portal down", "", "", PriorityHigh, nil)
	require.NoError(t, err)

	require.NoError(t, tk.TransitionTo(TicketStatusInProgress, ""))
	require.NoError(t, tk.TransitionTo(TicketStatusResolved, "restarted"))
	assert.NotNil(t, tk.ResolvedAt)
	assert.Equal(t, "restarted", tk.Resolution)

	require.NoError(t, tk.TransitionTo(TicketStatusInProgress, ""))
	assert.Nil(t, tk.ResolvedAt)

	err = tk.TransitionTo(TicketStatusClosed, "")
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err))
}
