package integration

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const defaultSyncLogLimit = 100

// IntegrationService manages a tenant's external system configurations
type IntegrationService struct {
	repo   integration.Repository
	logs   integration.SyncLogRepository
	logger *zap.Logger
}

// NewIntegrationService creates a new IntegrationService
func NewIntegrationService(repo integration.Repository, logs integration.SyncLogRepository, logger *zap.Logger) *IntegrationService {
	return &IntegrationService{
		repo:   repo,
		logs:   logs,
		logger: logger,
	}
}

// Create configures a new integration
func (s *IntegrationService) Create(ctx context.Context, p identity.Principal, req CreateIntegrationRequest) (*IntegrationResponse, error) {
	in, err := integration.NewIntegration(p.TenantID, &p.UserID, integration.Kind(req.Kind), req.Name, req.BaseURL, req.APIKey)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, err
	}

	s.logger.Info("Integration created",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("integration_id", in.ID.String()),
		zap.String("kind", string(in.Kind)))

	resp := ToIntegrationResponse(in)
	return &resp, nil
}

// List lists the tenant's integrations
func (s *IntegrationService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[IntegrationResponse], error) {
	filter = filter.Normalize()
	items, total, err := s.repo.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[IntegrationResponse]{}, err
	}
	out := make([]IntegrationResponse, len(items))
	for i := range items {
		out[i] = ToIntegrationResponse(&items[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

// Update changes connection settings
func (s *IntegrationService) Update(ctx context.Context, p identity.Principal, id uuid.UUID, req UpdateIntegrationRequest) (*IntegrationResponse, error) {
	in, err := s.repo.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}

	var baseURL, apiKey string
	if req.BaseURL != nil {
		baseURL = *req.BaseURL
	}
	if req.APIKey != nil {
		apiKey = *req.APIKey
	}
	if err := in.Update(baseURL, apiKey, req.Enabled); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, in); err != nil {
		return nil, err
	}

	resp := ToIntegrationResponse(in)
	return &resp, nil
}

// SyncLogs returns the newest sync attempts recorded against an integration
func (s *IntegrationService) SyncLogs(ctx context.Context, p identity.Principal, id uuid.UUID, limit int) ([]SyncLogResponse, error) {
	if _, err := s.repo.FindByIDForTenant(ctx, p.TenantID, id); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 1000 {
		limit = defaultSyncLogLimit
	}
	entries, err := s.logs.ListForIntegration(ctx, p.TenantID, id, limit)
	if err != nil {
		return nil, err
	}
	return ToSyncLogResponses(entries), nil
}
