package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Vendor), args.Get(1).(int64), args.Error(2)
}

func newPrincipal() identity.Principal {
	return identity.Principal{UserID: uuid.New(), TenantID: uuid.New(), Role: identity.RoleTenantUser}
}

func TestVendorService_Create(t *testing.T) {
	p := newPrincipal()

	t.Run("stores the vendor in the caller's tenant", func(t *testing.T) {
		repo := new(MockVendorRepository)
		svc := NewVendorService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(v *partner.Vendor) bool {
			return v.TenantID == p.TenantID && v.Code == "ACME" && v.ERPRef == "V-7"
		})).Return(nil)

		resp, err := svc.Create(context.Background(), p, CreateVendorRequest{
			Code:   "acme",
			Name:   "Acme Supplies",
			ERPRef: "V-7",
		})
		require.NoError(t, err)
		assert.Equal(t, "ACME", resp.Code)
		assert.Equal(t, partner.VendorStatusActive, resp.Status)
		assert.Equal(t, p.UserID, *resp.CreatedBy)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockVendorRepository)
		svc := NewVendorService(repo, zap.NewNop())
		repo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrConflict)

		_, err := svc.Create(context.Background(), p, CreateVendorRequest{Code: "ACME", Name: "Acme"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeConflict, de.Code)
		assert.Equal(t, "a vendor with this code already exists", de.Message)
	})

	t.Run("invalid code never reaches the repository", func(t *testing.T) {
		repo := new(MockVendorRepository)
		svc := NewVendorService(repo, zap.NewNop())

		_, err := svc.Create(context.Background(), p, CreateVendorRequest{Code: "not a code!", Name: "Acme"})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestVendorService_Update(t *testing.T) {
	p := newPrincipal()
	vendor, err := partner.NewVendor(p.TenantID, &p.UserID, "ACME", "Acme")
	require.NoError(t, err)
	vendor.Country = "DE"

	repo := new(MockVendorRepository)
	svc := NewVendorService(repo, zap.NewNop())
	repo.On("FindByIDForTenant", mock.Anything, p.TenantID, vendor.ID).Return(vendor, nil)
	repo.On("Save", mock.Anything, vendor).Return(nil)

	name := "Acme Industrial"
	status := "blocked"
	resp, err := svc.Update(context.Background(), p, vendor.ID, UpdateVendorRequest{Name: &name, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Acme Industrial", resp.Name)
	assert.Equal(t, "DE", resp.Country, "fields absent from the request are kept")
	assert.Equal(t, partner.VendorStatusBlocked, resp.Status)
	repo.AssertExpectations(t)
}

func TestVendorService_GetByID_OtherTenant(t *testing.T) {
	p := newPrincipal()
	id := uuid.New()

	repo := new(MockVendorRepository)
	svc := NewVendorService(repo, zap.NewNop())
	repo.On("FindByIDForTenant", mock.Anything, p.TenantID, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(context.Background(), p, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestVendorService_List(t *testing.T) {
	p := newPrincipal()
	a, _ := partner.NewVendor(p.TenantID, nil, "A1", "Alpha")
	b, _ := partner.NewVendor(p.TenantID, nil, "B1", "Beta")

	repo := new(MockVendorRepository)
	svc := NewVendorService(repo, zap.NewNop())
	repo.On("FindAllForTenant", mock.Anything, p.TenantID, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Vendor{*a, *b}, int64(2), nil)

	page, err := svc.List(context.Background(), p, shared.Filter{Search: "a"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, "A1", page.Items[0].Code)
}
