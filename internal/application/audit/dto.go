package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/audit"
)

// ListRequest is the query string of the audit log listing
type ListRequest struct {
	Module string `form:"module" binding:"max=50"`
	Action string `form:"action" binding:"max=100"`
	From   string `form:"from"`
	To     string `form:"to"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

// EntryResponse represents an audit entry in API responses
type EntryResponse struct {
	ID           uuid.UUID      `json:"id"`
	TenantID     *uuid.UUID     `json:"tenant_id"`
	ActorID      *uuid.UUID     `json:"actor_id"`
	Module       string         `json:"module"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Detail       map[string]any `json:"detail,omitempty"`
	Outcome      audit.Outcome  `json:"outcome"`
	StatusCode   int            `json:"status_code"`
	ErrorCode    string         `json:"error_code,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
	IP           string         `json:"ip,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ToEntryResponses converts domain entries to response DTOs
func ToEntryResponses(entries []audit.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			ID:           e.ID,
			TenantID:     e.TenantID,
			ActorID:      e.ActorID,
			Module:       e.Module,
			Action:       e.Action,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			Detail:       e.Detail,
			Outcome:      e.Outcome,
			StatusCode:   e.StatusCode,
			ErrorCode:    e.ErrorCode,
			RequestID:    e.RequestID,
			IP:           e.IP,
			UserAgent:    e.UserAgent,
			CreatedAt:    e.CreatedAt,
		}
	}
	return out
}
