package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/procurement"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func newPendingPO(t *testing.T, tenantID, integrationID uuid.UUID) *procurement.PurchaseOrder {
	t.Helper()
	po, err := procurement.NewPurchaseOrder(tenantID, nil, uuid.New(), "PO-"+uuid.NewString()[:8], "EUR",
		[]procurement.LineItemInput{{SKU: "A-1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)}})
	require.NoError(t, err)
	po.AttachIntegration(integrationID)
	return po
}

func TestGormPurchaseOrderRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	po := newPendingPO(t, tenantID, uuid.New())
	require.NoError(t, repo.Create(ctx, po))

	got, err := repo.FindByIDForTenant(ctx, tenantID, po.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(got.Amount))
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, "A-1", got.LineItems[0].SKU)
	assert.Equal(t, integration.SyncStatusPending, got.ERPSync.Status)

	_, err = repo.FindByIDForTenant(ctx, uuid.New(), po.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPurchaseOrderRepository_ClaimSync(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	integrationID := uuid.New()
	now := time.Now().UTC()
	lease := 5 * time.Minute

	po := newPendingPO(t, tenantID, integrationID)
	require.NoError(t, repo.Create(ctx, po))

	first := uuid.New()
	ok, err := repo.ClaimSync(ctx, tenantID, po.ID, first, integrationID, now, now.Add(-lease))
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("second claim while fresh is refused", func(t *testing.T) {
		ok, err := repo.ClaimSync(ctx, tenantID, po.ID, uuid.New(), integrationID, now.Add(time.Second), now.Add(time.Second-lease))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other tenant cannot claim", func(t *testing.T) {
		ok, err := repo.ClaimSync(ctx, uuid.New(), po.ID, uuid.New(), integrationID, now, now.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update requires the claim token", func(t *testing.T) {
		ok, err := repo.UpdateSync(ctx, tenantID, po.ID, uuid.New(), procurement.SyncUpdate{
			State: procurement.SyncState{Status: integration.SyncStatusSynced},
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stale claim can be taken over", func(t *testing.T) {
		later := now.Add(10 * time.Minute)
		second := uuid.New()
		ok, err := repo.ClaimSync(ctx, tenantID, po.ID, second, integrationID, later, later.Add(-lease))
		require.NoError(t, err)
		assert.True(t, ok)

		// the original holder lost its claim
		ok, err = repo.UpdateSync(ctx, tenantID, po.ID, first, procurement.SyncUpdate{
			State: procurement.SyncState{Status: integration.SyncStatusFailed},
		})
		require.NoError(t, err)
		assert.False(t, ok)

		syncedAt := later
		ok, err = repo.UpdateSync(ctx, tenantID, po.ID, second, procurement.SyncUpdate{
			State: procurement.SyncState{
				Status:     integration.SyncStatusSynced,
				ExternalID: "ERP-42",
				Attempts:   1,
				SyncedAt:   &syncedAt,
			},
			ReleaseClaim: true,
		})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("sync writes leave business columns untouched", func(t *testing.T) {
		got, err := repo.FindByIDForTenant(ctx, tenantID, po.ID)
		require.NoError(t, err)
		assert.Equal(t, integration.SyncStatusSynced, got.ERPSync.Status)
		assert.Equal(t, "ERP-42", got.ERPSync.ExternalID)
		assert.Nil(t, got.ERPSync.ClaimToken)
		assert.Equal(t, po.Number, got.Number)
		assert.True(t, po.Amount.Equal(got.Amount))
		assert.Equal(t, procurement.PurchaseOrderStatusIssued, got.Status)
	})

	t.Run("synced order is not claimable", func(t *testing.T) {
		ok, err := repo.ClaimSync(ctx, tenantID, po.ID, uuid.New(), integrationID, now.Add(time.Hour), now.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGormPurchaseOrderRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	po := newPendingPO(t, tenantID, uuid.New())
	require.NoError(t, repo.Create(ctx, po))
	require.NoError(t, po.TransitionTo(procurement.PurchaseOrderStatusClosed))
	require.NoError(t, repo.UpdateStatus(ctx, po))

	list, total, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{Status: "closed"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, integration.SyncStatusPending, list[0].ERPSync.Status)
}
