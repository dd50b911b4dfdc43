package risk

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/risk"
)

// CreateAssessmentRequest records an evaluator's own risk rating of a vendor
type CreateAssessmentRequest struct {
	VendorID uuid.UUID `json:"vendor_id" binding:"required"`
	Level    string    `json:"level" binding:"required,oneof=low medium high critical"`
	Notes    string    `json:"notes" binding:"max=4000"`
}

// ListAssessmentsRequest narrows the assessment listing
type ListAssessmentsRequest struct {
	VendorID *uuid.UUID `form:"vendor_id"`
}

// AssessmentResponse represents a risk assessment in API responses
type AssessmentResponse struct {
	ID            uuid.UUID         `json:"id"`
	TenantID      uuid.UUID         `json:"tenant_id"`
	VendorID      uuid.UUID         `json:"vendor_id"`
	Source        risk.Source       `json:"source"`
	Level         risk.Level        `json:"level,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	IntegrationID *uuid.UUID        `json:"integration_id,omitempty"`
	SyncStatus    risk.SyncStatus   `json:"sync_status"`
	ProviderScore *float64          `json:"provider_score,omitempty"`
	ProviderGrade string            `json:"provider_grade,omitempty"`
	ProviderRef   string            `json:"provider_ref,omitempty"`
	SyncError     string            `json:"sync_error,omitempty"`
	SyncedAt      *time.Time        `json:"synced_at,omitempty"`
	Insight       *advisory.Insight `json:"insight,omitempty"`
	CreatedBy     *uuid.UUID        `json:"created_by,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ToAssessmentResponse converts a domain assessment to a response DTO
func ToAssessmentResponse(a *risk.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:            a.ID,
		TenantID:      a.TenantID,
		VendorID:      a.VendorID,
		Source:        a.Source,
		Level:         a.Level,
		Notes:         a.Notes,
		IntegrationID: a.IntegrationID,
		SyncStatus:    a.SyncStatus,
		ProviderScore: a.ProviderScore,
		ProviderGrade: a.ProviderGrade,
		ProviderRef:   a.ProviderRef,
		SyncError:     a.SyncError,
		SyncedAt:      a.SyncedAt,
		Insight:       a.Insight,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
