package audit

import (
	"context"
	"time"

	"github.com/vendorhub/backend/internal/domain/audit"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// QueryService reads the audit trail of the caller's tenant
type QueryService struct {
	repo audit.Repository
}

// NewQueryService creates a new QueryService
func NewQueryService(repo audit.Repository) *QueryService {
	return &QueryService{repo: repo}
}

// List returns the newest matching entries of the caller's tenant
func (s *QueryService) List(ctx context.Context, p identity.Principal, req ListRequest) ([]EntryResponse, error) {
	q := audit.Query{
		Module: req.Module,
		Action: req.Action,
		Limit:  req.Limit,
	}
	var err error
	if q.From, err = parseTime("from", req.From); err != nil {
		return nil, err
	}
	if q.To, err = parseTime("to", req.To); err != nil {
		return nil, err
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, shared.NewValidationError("from", "must not be after to")
	}

	entries, err := s.repo.List(ctx, p.TenantID, q.Normalize())
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}

func parseTime(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, shared.NewValidationError(field, "must be an RFC3339 timestamp")
	}
	return &t, nil
}
