package helpdesk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apphelpdesk "github.com/vendorhub/backend/internal/application/helpdesk"
	"github.com/vendorhub/backend/internal/domain/helpdesk"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/testutil"
	"go.uber.org/zap"
)

func TestTicketService(t *testing.T) {
	db := testutil.NewSQLiteDB(t).DB
	svc := apphelpdesk.NewTicketService(persistence.NewGormTicketRepository(db), persistence.NewGormVendorRepository(db), zap.NewNop())

	staff := testutil.Principal(identity.RoleTenantUser)
	vendorUser := testutil.PrincipalIn(staff.TenantID, identity.RoleVendorUser)
	otherVendorUser := testutil.PrincipalIn(staff.TenantID, identity.RoleVendorUser)

	raised, err := svc.Create(testutil.Context(vendorUser), vendorUser, apphelpdesk.CreateTicketRequest{
		Subject:  "Invoice rejected",
		Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, helpdesk.TicketStatusOpen, raised.Status)
	assert.Equal(t, helpdesk.PriorityHigh, raised.Priority)

	_, err = svc.Create(testutil.Context(staff), staff, apphelpdesk.CreateTicketRequest{Subject: "Portal slow"})
	require.NoError(t, err)

	t.Run("vendor users only see their own tickets", func(t *testing.T) {
		page, err := svc.List(testutil.Context(vendorUser), vendorUser, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, raised.ID, page.Items[0].ID)

		_, err = svc.GetByID(testutil.Context(otherVendorUser), otherVendorUser, raised.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		page, err = svc.List(testutil.Context(staff), staff, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})

	t.Run("status transitions", func(t *testing.T) {
		ctx := testutil.Context(staff)
		_, err := svc.ChangeStatus(ctx, staff, raised.ID, apphelpdesk.ChangeTicketStatusRequest{Status: "resolved"})
		assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err), "open cannot jump to resolved")

		_, err = svc.ChangeStatus(ctx, staff, raised.ID, apphelpdesk.ChangeTicketStatusRequest{Status: "in_progress"})
		require.NoError(t, err)
		resolved, err := svc.ChangeStatus(ctx, staff, raised.ID, apphelpdesk.ChangeTicketStatusRequest{Status: "resolved", Resolution: "re-issued"})
		require.NoError(t, err)
		assert.Equal(t, "re-issued", resolved.Resolution)
		assert.NotNil(t, resolved.ResolvedAt)
	})
}
