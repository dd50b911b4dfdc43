// Package audit models the append-only record of privileged actions.
package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Outcome summarizes how a request ended
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeDenied  Outcome = "denied"
	OutcomeFailure Outcome = "failure"
)

// OutcomeForStatus maps an HTTP status to an outcome
func OutcomeForStatus(status int) Outcome {
	switch {
	case status < 400:
		return OutcomeSuccess
	case status == 401 || status == 403:
		return OutcomeDenied
	default:
		return OutcomeFailure
	}
}

// Entry is an immutable audit record. There is no update or delete path.
type Entry struct {
	ID           uuid.UUID
	TenantID     *uuid.UUID // nil only when the tenant could not be determined
	ActorID      *uuid.UUID // nil for pre-authentication failures
	Module       string
	Action       string
	ResourceType string
	ResourceID   string
	Detail       map[string]any // already redacted
	Outcome      Outcome
	StatusCode   int
	ErrorCode    string
	RequestID    string
	IP           string
	UserAgent    string
	CreatedAt    time.Time
}

// EntryInput carries everything observed about one request
type EntryInput struct {
	TenantID     *uuid.UUID
	ActorID      *uuid.UUID
	Module       string
	Action       string
	ResourceType string
	ResourceID   string
	Detail       map[string]any
	StatusCode   int
	ErrorCode    string
	RequestID    string
	IP           string
	UserAgent    string
}

// NewEntry builds an entry, redacting the detail before it is stored anywhere.
// The timestamp is assigned here, never taken from the client.
func NewEntry(in EntryInput) (*Entry, error) {
	action := strings.TrimSpace(in.Action)
	if action == "" {
		return nil, shared.NewValidationError("action", "is required")
	}
	module := in.Module
	if module == "" {
		module, _, _ = strings.Cut(action, ".")
	}

	detail, _ := Redact(in.Detail).(map[string]any)

	return &Entry{
		ID:           uuid.New(),
		TenantID:     in.TenantID,
		ActorID:      in.ActorID,
		Module:       module,
		Action:       action,
		ResourceType: in.ResourceType,
		ResourceID:   in.ResourceID,
		Detail:       detail,
		Outcome:      OutcomeForStatus(in.StatusCode),
		StatusCode:   in.StatusCode,
		ErrorCode:    in.ErrorCode,
		RequestID:    in.RequestID,
		IP:           truncate(in.IP, 64),
		UserAgent:    truncate(in.UserAgent, 512),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
