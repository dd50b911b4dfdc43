package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// RemoteError is a classified failure from an external system
type RemoteError struct {
	// Transient errors may succeed on retry (network, timeout, 408, 429, 5xx)
	Transient bool
	// StatusCode is the remote HTTP status, 0 for transport failures
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps a retryable failure
func NewTransientError(err error) *RemoteError {
	return &RemoteError{Transient: true, Message: err.Error(), Err: err}
}

// ClassifyStatus builds a RemoteError from a non-2xx HTTP status
func ClassifyStatus(status int, body string) *RemoteError {
	transient := status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests ||
		status >= 500
	return &RemoteError{Transient: transient, StatusCode: status, Message: body}
}

// IsTransient decides whether a sync attempt may be retried.
// Unclassified errors are treated as transient; cancellation is not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Transient
	}
	return !errors.Is(err, context.Canceled)
}

// ErrSyncInProgress is returned when another run holds the record's sync claim
var ErrSyncInProgress = shared.NewDomainError(shared.CodeSyncInProgress, "a synchronization is already in progress for this record")

// SyncError reports a sync run that ended without success. The local record
// is kept either way; Transient tells the caller whether retrying later may help.
type SyncError struct {
	Transient  bool
	Attempts   int
	RetryAfter time.Duration
	Err        error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Code returns SYNC_RETRYABLE for exhausted transient failures, SYNC_REJECTED otherwise
func (e *SyncError) Code() string {
	if e.Transient {
		return shared.CodeSyncRetryable
	}
	return shared.CodeSyncRejected
}
