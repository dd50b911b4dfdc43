package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
)

// Query filters the audit trail of one tenant
type Query struct {
	Module string
	Action string // substring, case-insensitive
	From   *time.Time
	To     *time.Time
	Limit  int
}

// Normalize applies the default and maximum row limits
func (q Query) Normalize() Query {
	if q.Limit <= 0 {
		q.Limit = DefaultQueryLimit
	}
	if q.Limit > MaxQueryLimit {
		q.Limit = MaxQueryLimit
	}
	return q
}

// Repository is insert-only. Results of List are ordered newest first.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, tenantID uuid.UUID, q Query) ([]Entry, error)
}
