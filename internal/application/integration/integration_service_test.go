package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockIntegrationRepository is a mock implementation of integration.Repository
type MockIntegrationRepository struct {
	mock.Mock
}

func (m *MockIntegrationRepository) Create(ctx context.Context, in *integration.Integration) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockIntegrationRepository) Save(ctx context.Context, in *integration.Integration) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockIntegrationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*integration.Integration, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]integration.Integration, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]integration.Integration), args.Get(1).(int64), args.Error(2)
}

func (m *MockIntegrationRepository) FindEnabled(ctx context.Context, tenantID uuid.UUID, kind integration.Kind) (*integration.Integration, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Integration), args.Error(1)
}

func adminPrincipal() identity.Principal {
	return identity.Principal{UserID: uuid.New(), TenantID: uuid.New(), Role: identity.RoleTenantAdmin}
}

func TestIntegrationService_Create(t *testing.T) {
	repo := new(MockIntegrationRepository)
	svc := NewIntegrationService(repo, &memorySyncLogs{}, zap.NewNop())
	p := adminPrincipal()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(in *integration.Integration) bool {
		return in.TenantID == p.TenantID && *in.CreatedBy == p.UserID && in.APIKey == "s3cret"
	})).Return(nil)

	resp, err := svc.Create(context.Background(), p, CreateIntegrationRequest{
		Kind:    "erp",
		Name:    "NetSuite",
		BaseURL: "https://erp.example.com/",
		APIKey:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, p.TenantID, resp.TenantID)
	assert.Equal(t, "https://erp.example.com", resp.BaseURL)
	assert.True(t, resp.HasAPIKey)
	assert.True(t, resp.Enabled)
	repo.AssertExpectations(t)
}

func TestIntegrationService_Create_InvalidKind(t *testing.T) {
	repo := new(MockIntegrationRepository)
	svc := NewIntegrationService(repo, &memorySyncLogs{}, zap.NewNop())

	_, err := svc.Create(context.Background(), adminPrincipal(), CreateIntegrationRequest{
		Kind: "crm", Name: "x", BaseURL: "https://x.io",
	})
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIntegrationService_Update_Disable(t *testing.T) {
	repo := new(MockIntegrationRepository)
	svc := NewIntegrationService(repo, &memorySyncLogs{}, zap.NewNop())
	p := adminPrincipal()

	existing, err := integration.NewIntegration(p.TenantID, nil, integration.KindRiskProvider, "Ratings", "https://r.example.com", "old")
	require.NoError(t, err)

	repo.On("FindByIDForTenant", mock.Anything, p.TenantID, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	disabled := false
	resp, err := svc.Update(context.Background(), p, existing.ID, UpdateIntegrationRequest{Enabled: &disabled})
	require.NoError(t, err)
	assert.False(t, resp.Enabled)
	assert.Equal(t, "old", existing.APIKey)
	repo.AssertExpectations(t)
}

func TestIntegrationService_Update_OtherTenantIsNotFound(t *testing.T) {
	repo := new(MockIntegrationRepository)
	svc := NewIntegrationService(repo, &memorySyncLogs{}, zap.NewNop())
	p := adminPrincipal()
	id := uuid.New()

	repo.On("FindByIDForTenant", mock.Anything, p.TenantID, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Update(context.Background(), p, id, UpdateIntegrationRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestIntegrationService_SyncLogs(t *testing.T) {
	repo := new(MockIntegrationRepository)
	logs := &memorySyncLogs{}
	svc := NewIntegrationService(repo, logs, zap.NewNop())
	p := adminPrincipal()

	in, err := integration.NewIntegration(p.TenantID, nil, integration.KindERP, "ERP", "https://erp.example.com", "")
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, p.TenantID, in.ID).Return(in, nil)

	require.NoError(t, logs.Append(context.Background(), &integration.SyncLog{
		ID: uuid.New(), TenantID: p.TenantID, IntegrationID: in.ID, Attempt: 1, Status: integration.LogStatusFailed,
	}))
	require.NoError(t, logs.Append(context.Background(), &integration.SyncLog{
		ID: uuid.New(), TenantID: p.TenantID, IntegrationID: uuid.New(), Attempt: 1, Status: integration.LogStatusSuccess,
	}))

	out, err := svc.SyncLogs(context.Background(), p, in.ID, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, integration.LogStatusFailed, out[0].Status)
}
