package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockTenantRepository is a mock implementation of identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *identity.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

func newResolverFixture(t *testing.T) (*Resolver, *MockUserRepository, *MockTenantRepository, *identity.User, *identity.Tenant) {
	t.Helper()
	tenant, err := identity.NewTenant("acme", "Acme", "", "")
	require.NoError(t, err)
	user := &identity.User{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenant.ID,
		Email:      "buyer@acme.example.com",
		Role:       identity.RoleTenantUser,
		Status:     identity.UserStatusActive,
	}
	users := new(MockUserRepository)
	tenants := new(MockTenantRepository)
	return NewResolver(users, tenants), users, tenants, user, tenant
}

func TestResolver_Resolve(t *testing.T) {
	r, users, tenants, user, tenant := newResolverFixture(t)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

	p, err := r.Resolve(context.Background(), user.ID, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.Principal{
		UserID:   user.ID,
		TenantID: tenant.ID,
		Role:     identity.RoleTenantUser,
		Email:    user.Email,
	}, p)
}

func TestResolver_Resolve_UsesPersistedRole(t *testing.T) {
	r, users, tenants, user, tenant := newResolverFixture(t)
	user.Role = identity.RoleEvaluator
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

	p, err := r.Resolve(context.Background(), user.ID, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleEvaluator, p.Role)
}

func TestResolver_Resolve_FailsClosed(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		r, users, tenants, user, tenant := newResolverFixture(t)
		users.On("FindByID", mock.Anything, user.ID).Return(nil, shared.ErrNotFound)

		_, err := r.Resolve(context.Background(), user.ID, tenant.ID)
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
		tenants.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("claimed tenant differs from persisted tenant", func(t *testing.T) {
		r, users, tenants, user, _ := newResolverFixture(t)
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err := r.Resolve(context.Background(), user.ID, uuid.New())
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
		tenants.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("inactive user", func(t *testing.T) {
		r, users, _, user, tenant := newResolverFixture(t)
		user.Status = identity.UserStatusInactive
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err := r.Resolve(context.Background(), user.ID, tenant.ID)
		assert.ErrorIs(t, err, identity.ErrUserInactive)
	})

	t.Run("suspended tenant", func(t *testing.T) {
		r, users, tenants, user, tenant := newResolverFixture(t)
		require.NoError(t, tenant.Suspend())
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

		_, err := r.Resolve(context.Background(), user.ID, tenant.ID)
		assert.ErrorIs(t, err, identity.ErrTenantInactive)
	})

	t.Run("storage failure is not masked", func(t *testing.T) {
		r, users, _, user, tenant := newResolverFixture(t)
		boom := errors.New("connection reset")
		users.On("FindByID", mock.Anything, user.ID).Return(nil, boom)

		_, err := r.Resolve(context.Background(), user.ID, tenant.ID)
		assert.ErrorIs(t, err, boom)
	})
}
