package risk

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/advisory"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Source tells where an assessment's rating came from
type Source string

const (
	SourceManual   Source = "manual"
	SourceProvider Source = "provider"
)

// SyncStatus tracks a provider pull. Manual assessments are not_applicable.
type SyncStatus string

const (
	SyncStatusNotApplicable SyncStatus = "not_applicable"
	SyncStatusPending       SyncStatus = "pending"
	SyncStatusSynced        SyncStatus = "synced"
	SyncStatusFailed        SyncStatus = "failed"
)

// Level is a human-assigned risk level
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// IsValid checks if the level is valid
func (l Level) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// Assessment is a point-in-time risk view of a vendor
type Assessment struct {
	shared.TenantEntity
	VendorID      uuid.UUID
	Source        Source
	Level         Level
	Notes         string
	IntegrationID *uuid.UUID
	SyncStatus    SyncStatus
	ProviderScore *float64
	ProviderGrade string
	ProviderRef   string
	SyncError     string
	SyncedAt      *time.Time
	Insight       *advisory.Insight
}

// NewManualAssessment records an evaluator's own rating
func NewManualAssessment(tenantID uuid.UUID, createdBy *uuid.UUID, vendorID uuid.UUID, level Level, notes string) (*Assessment, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "is required")
	}
	if !level.IsValid() {
		return nil, shared.NewValidationError("level", "must be one of low, medium, high, critical")
	}
	return &Assessment{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		VendorID:     vendorID,
		Source:       SourceManual,
		Level:        level,
		Notes:        strings.TrimSpace(notes),
		SyncStatus:   SyncStatusNotApplicable,
	}, nil
}

// NewProviderAssessment creates a pending assessment to be filled by a provider pull
func NewProviderAssessment(tenantID uuid.UUID, createdBy *uuid.UUID, vendorID, integrationID uuid.UUID) *Assessment {
	return &Assessment{
		TenantEntity:  shared.NewTenantEntity(tenantID, createdBy),
		VendorID:      vendorID,
		Source:        SourceProvider,
		IntegrationID: &integrationID,
		SyncStatus:    SyncStatusPending,
	}
}

// RecordRating stores the provider's rating
func (a *Assessment) RecordRating(r integration.Rating, at time.Time) {
	score := r.Score
	a.ProviderScore = &score
	a.ProviderGrade = r.Grade
	a.ProviderRef = r.Reference
	a.SyncStatus = SyncStatusSynced
	a.SyncError = ""
	a.SyncedAt = &at
	a.Touch()
}

// RecordFailure keeps the assessment and stores why the pull failed
func (a *Assessment) RecordFailure(detail string) {
	a.SyncStatus = SyncStatusFailed
	a.SyncError = detail
	a.Touch()
}

// AttachInsight annotates the assessment. It never changes Level or SyncStatus.
func (a *Assessment) AttachInsight(in advisory.Insight) {
	a.Insight = &in
	a.Touch()
}
