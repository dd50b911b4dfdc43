package integration

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateIntegrationRequest configures a new external system for the caller's tenant
type CreateIntegrationRequest struct {
	Kind    string `json:"kind" binding:"required,oneof=erp risk_provider"`
	Name    string `json:"name" binding:"required,min=1,max=100"`
	BaseURL string `json:"base_url" binding:"required,url,max=500"`
	APIKey  string `json:"api_key" binding:"max=500"`
}

// UpdateIntegrationRequest changes connection settings; omitted fields are kept
type UpdateIntegrationRequest struct {
	BaseURL *string `json:"base_url" binding:"omitempty,url,max=500"`
	APIKey  *string `json:"api_key" binding:"omitempty,max=500"`
	Enabled *bool   `json:"enabled"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// IntegrationResponse never includes the API key, only whether one is set
type IntegrationResponse struct {
	ID        uuid.UUID        `json:"id"`
	TenantID  uuid.UUID        `json:"tenant_id"`
	Kind      integration.Kind `json:"kind"`
	Name      string           `json:"name"`
	BaseURL   string           `json:"base_url"`
	HasAPIKey bool             `json:"has_api_key"`
	Enabled   bool             `json:"enabled"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SyncLogResponse is one attempt in the sync history
type SyncLogResponse struct {
	ID            uuid.UUID             `json:"id"`
	IntegrationID uuid.UUID             `json:"integration_id"`
	Direction     integration.Direction `json:"direction"`
	ResourceType  string                `json:"resource_type"`
	ResourceID    uuid.UUID             `json:"resource_id"`
	Attempt       int                   `json:"attempt"`
	Status        integration.LogStatus `json:"status"`
	RecordCount   int                   `json:"record_count"`
	ErrorDetail   string                `json:"error_detail,omitempty"`
	DurationMs    int64                 `json:"duration_ms"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ToIntegrationResponse converts a domain integration to its response DTO
func ToIntegrationResponse(in *integration.Integration) IntegrationResponse {
	return IntegrationResponse{
		ID:        in.ID,
		TenantID:  in.TenantID,
		Kind:      in.Kind,
		Name:      in.Name,
		BaseURL:   in.BaseURL,
		HasAPIKey: in.APIKey != "",
		Enabled:   in.Enabled,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
}

// ToSyncLogResponses converts sync log entries to response DTOs
func ToSyncLogResponses(entries []integration.SyncLog) []SyncLogResponse {
	out := make([]SyncLogResponse, len(entries))
	for i, e := range entries {
		out[i] = SyncLogResponse{
			ID:            e.ID,
			IntegrationID: e.IntegrationID,
			Direction:     e.Direction,
			ResourceType:  e.ResourceType,
			ResourceID:    e.ResourceID,
			Attempt:       e.Attempt,
			Status:        e.Status,
			RecordCount:   e.RecordCount,
			ErrorDetail:   e.ErrorDetail,
			DurationMs:    e.Duration.Milliseconds(),
			CreatedAt:     e.CreatedAt,
		}
	}
	return out
}
