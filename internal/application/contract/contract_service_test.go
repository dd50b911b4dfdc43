package contract_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appcontract "github.com/vendorhub/backend/internal/application/contract"
	"github.com/vendorhub/backend/internal/domain/contract"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/testutil"
	"go.uber.org/zap"
)

func TestContractService(t *testing.T) {
	db := testutil.NewSQLiteDB(t).DB
	vendors := persistence.NewGormVendorRepository(db)
	svc := appcontract.NewContractService(persistence.NewGormContractRepository(db), vendors, zap.NewNop())

	admin := testutil.Principal(identity.RoleTenantAdmin)
	ctx := testutil.Context(admin)
	vendor, err := partner.NewVendor(admin.TenantID, &admin.UserID, "ACME", "Acme")
	require.NoError(t, err)
	require.NoError(t, vendors.Create(ctx, vendor))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := appcontract.CreateContractRequest{
		VendorID:  vendor.ID,
		Number:    "C-2026-001",
		Title:     "Framework agreement",
		Value:     decimal.NewFromInt(250000),
		Currency:  "EUR",
		StartDate: start,
		EndDate:   start.AddDate(2, 0, 0),
		Terms:     "net 30",
	}

	t.Run("create and activate", func(t *testing.T) {
		c, err := svc.Create(ctx, admin, req)
		require.NoError(t, err)
		assert.Equal(t, contract.StatusDraft, c.Status)
		assert.Equal(t, "net 30", c.Terms)

		active, err := svc.ChangeStatus(ctx, admin, c.ID, appcontract.ChangeContractStatusRequest{Status: "active"})
		require.NoError(t, err)
		assert.Equal(t, contract.StatusActive, active.Status)

		got, err := svc.GetByID(ctx, admin, c.ID)
		require.NoError(t, err)
		assert.Equal(t, contract.StatusActive, got.Status)
		assert.True(t, req.Value.Equal(got.Value))
	})

	t.Run("end before start", func(t *testing.T) {
		bad := req
		bad.Number = "C-2026-002"
		bad.EndDate = start.AddDate(0, 0, -1)
		_, err := svc.Create(ctx, admin, bad)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("unknown vendor", func(t *testing.T) {
		bad := req
		bad.Number = "C-2026-003"
		bad.VendorID = uuid.New()
		_, err := svc.Create(ctx, admin, bad)
		assert.Equal(t, shared.CodeInvalidReference, shared.CodeOf(err))
	})

	t.Run("other tenant", func(t *testing.T) {
		other := testutil.Principal(identity.RoleTenantAdmin)
		page, err := svc.List(testutil.Context(other), other, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}
