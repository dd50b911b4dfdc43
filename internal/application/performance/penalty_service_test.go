package performance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appperformance "github.com/vendorhub/backend/internal/application/performance"
	"github.com/vendorhub/backend/internal/domain/contract"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/performance"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/insight"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/testutil"
	"go.uber.org/zap"
)

type fixture struct {
	svc       *appperformance.PenaltyService
	vendors   *persistence.GormVendorRepository
	contracts *persistence.GormContractRepository
	admin     identity.Principal
	ctx       context.Context
	vendor    *partner.Vendor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t).DB

	f := &fixture{
		vendors:   persistence.NewGormVendorRepository(db),
		contracts: persistence.NewGormContractRepository(db),
		admin:     testutil.Principal(identity.RoleTenantAdmin),
	}
	f.ctx = testutil.Context(f.admin)
	f.vendor = f.addVendor(t, "ACME")

	f.svc = appperformance.NewPenaltyService(
		persistence.NewGormPenaltyRepository(db), f.vendors, f.contracts,
		insight.NewHeuristic(), zap.NewNop(),
	)
	return f
}

func (f *fixture) addVendor(t *testing.T, code string) *partner.Vendor {
	t.Helper()
	v, err := partner.NewVendor(f.admin.TenantID, &f.admin.UserID, code, code+" Ltd")
	require.NoError(t, err)
	require.NoError(t, f.vendors.Create(f.ctx, v))
	return v
}

func (f *fixture) addContract(t *testing.T, vendorID uuid.UUID) *contract.Contract {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := contract.NewContract(f.admin.TenantID, &f.admin.UserID, vendorID, "C-"+vendorID.String()[:6], "Supply",
		decimal.NewFromInt(50000), "EUR", start, start.AddDate(1, 0, 0))
	require.NoError(t, err)
	require.NoError(t, f.contracts.Create(f.ctx, c))
	return c
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPenaltyService_AISuggestedStaysPending(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Create(f.ctx, f.admin, appperformance.CreatePenaltyRequest{
		VendorID:        f.vendor.ID,
		Reason:          "late deliveries in March",
		Currency:        "eur",
		AISuggested:     true,
		SuggestedAmount: amount("1200"),
	})
	require.NoError(t, err)

	assert.Equal(t, performance.PenaltyStatusPending, p.Status)
	assert.Nil(t, p.Amount, "the suggestion never becomes the enforceable amount")
	require.NotNil(t, p.SuggestedAmount)
	assert.True(t, decimal.NewFromInt(1200).Equal(*p.SuggestedAmount))
	assert.Equal(t, "EUR", p.Currency)
	require.NotNil(t, p.Insight)
	assert.Equal(t, 20.0, p.Insight.Score)
	assert.True(t, p.Insight.HasSignal())
}

func TestPenaltyService_ApproveAndReject(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Create(f.ctx, f.admin, appperformance.CreatePenaltyRequest{
		VendorID:        f.vendor.ID,
		Reason:          "quality defects",
		Currency:        "EUR",
		AISuggested:     true,
		SuggestedAmount: amount("900"),
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(f.ctx, f.admin, p.ID, appperformance.ApprovePenaltyRequest{})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de, "approval without any amount is refused")
	assert.Equal(t, shared.CodeValidation, de.Code)

	approved, err := f.svc.Approve(f.ctx, f.admin, p.ID, appperformance.ApprovePenaltyRequest{Amount: amount("750"), Note: "reduced"})
	require.NoError(t, err)
	assert.Equal(t, performance.PenaltyStatusApproved, approved.Status)
	require.NotNil(t, approved.Amount)
	assert.True(t, decimal.NewFromInt(750).Equal(*approved.Amount))
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, f.admin.UserID, *approved.DecidedBy)

	_, err = f.svc.Reject(f.ctx, f.admin, p.ID, appperformance.RejectPenaltyRequest{})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInvalidState, de.Code)

	second, err := f.svc.Create(f.ctx, f.admin, appperformance.CreatePenaltyRequest{
		VendorID: f.vendor.ID,
		Reason:   "missed SLA",
		Amount:   amount("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, second.Insight.Score, "one prior approved penalty")

	rejected, err := f.svc.Reject(f.ctx, f.admin, second.ID, appperformance.RejectPenaltyRequest{Note: "disputed"})
	require.NoError(t, err)
	assert.Equal(t, performance.PenaltyStatusRejected, rejected.Status)
	assert.Equal(t, "disputed", rejected.DecisionNote)
}

func TestPenaltyService_ContractMustBelongToVendor(t *testing.T) {
	f := newFixture(t)
	other := f.addVendor(t, "BOLTCO")
	c := f.addContract(t, other.ID)

	tests := []struct {
		name       string
		contractID uuid.UUID
	}{
		{"unknown contract", uuid.New()},
		{"contract of another vendor", c.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.contractID
			_, err := f.svc.Create(f.ctx, f.admin, appperformance.CreatePenaltyRequest{
				VendorID:   f.vendor.ID,
				ContractID: &id,
				Reason:     "breach",
			})
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, shared.CodeInvalidReference, de.Code)
		})
	}

	own := f.addContract(t, f.vendor.ID)
	p, err := f.svc.Create(f.ctx, f.admin, appperformance.CreatePenaltyRequest{
		VendorID:   f.vendor.ID,
		ContractID: &own.ID,
		Reason:     "breach",
	})
	require.NoError(t, err)
	assert.Equal(t, own.ID, *p.ContractID)
}

func TestPenaltyService_TenantScoped(t *testing.T) {
	f := newFixture(t)
	p, err := f.svc.Create(f.ctx, f.admin, appperformance.CreatePenaltyRequest{VendorID: f.vendor.ID, Reason: "late"})
	require.NoError(t, err)

	other := testutil.Principal(identity.RoleTenantAdmin)
	otherCtx := testutil.Context(other)

	_, err = f.svc.Approve(otherCtx, other, p.ID, appperformance.ApprovePenaltyRequest{Amount: amount("1")})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.svc.Create(otherCtx, other, appperformance.CreatePenaltyRequest{VendorID: f.vendor.ID, Reason: "late"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInvalidReference, de.Code)

	page, err := f.svc.List(otherCtx, other, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	got, err := f.svc.GetByID(f.ctx, f.admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}
