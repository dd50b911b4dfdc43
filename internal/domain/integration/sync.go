package integration

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus is the sync state stored on a sync-eligible record
type SyncStatus string

const (
	// SyncStatusNotConfigured means no integration existed when the record was created
	SyncStatusNotConfigured SyncStatus = "not_configured"
	// SyncStatusPending is committed locally, not yet attempted
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusSyncing is claimed by one worker and attempting
	SyncStatusSyncing SyncStatus = "syncing"
	// SyncStatusRetrying is waiting out a backoff after a transient failure
	SyncStatusRetrying SyncStatus = "retrying"
	// SyncStatusSynced has a confirmed remote representation
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusFailed exhausted retries or hit a permanent failure; manual re-sync allowed
	SyncStatusFailed SyncStatus = "failed"
)

// IsValid returns true if the status is known
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusNotConfigured, SyncStatusPending, SyncStatusSyncing,
		SyncStatusRetrying, SyncStatusSynced, SyncStatusFailed:
		return true
	}
	return false
}

// InFlight reports whether a worker currently owns the record
func (s SyncStatus) InFlight() bool {
	return s == SyncStatusSyncing || s == SyncStatusRetrying
}

// Claimable lists statuses from which a new sync run may start
func Claimable() []SyncStatus {
	return []SyncStatus{SyncStatusPending, SyncStatusFailed, SyncStatusNotConfigured}
}

// Direction of data flow relative to this system
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// LogStatus is the result of one attempt
type LogStatus string

const (
	LogStatusSuccess  LogStatus = "success"
	LogStatusFailed   LogStatus = "failed"
	LogStatusPartial  LogStatus = "partial"
	LogStatusRetrying LogStatus = "retrying"
)

// SyncLog records one attempt to reach an external system
type SyncLog struct {
	// ID is the unique identifier of the log entry
	ID uuid.UUID
	// TenantID is the tenant the attempt ran for
	TenantID uuid.UUID
	// IntegrationID references the configured integration, always set
	IntegrationID uuid.UUID
	// Direction indicates push (outbound) or pull (inbound)
	Direction Direction
	// ResourceType and ResourceID identify the local record
	ResourceType string
	ResourceID   uuid.UUID
	// Attempt is 1-based within one sync run
	Attempt int
	// Status is the attempt result
	Status LogStatus
	// RecordCount is the number of records transferred
	RecordCount int
	// ErrorDetail holds the remote or transport error, if any
	ErrorDetail string
	// Duration of the remote call
	Duration time.Duration
	// CreatedAt is when the attempt finished
	CreatedAt time.Time
}
