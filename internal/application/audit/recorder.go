// Package audit records and queries the audit trail of privileged requests.
package audit

import (
	"context"
	"time"

	"github.com/vendorhub/backend/internal/domain/audit"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// Recorder writes audit entries on a best-effort basis. A failed write is
// logged and counted; it never changes the response of the audited request.
type Recorder struct {
	repo    audit.Repository
	metrics *telemetry.Metrics
	logger  *zap.Logger
}

// NewRecorder creates a new Recorder. metrics may be nil.
func NewRecorder(repo audit.Repository, metrics *telemetry.Metrics, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, metrics: metrics, logger: logger}
}

// Record redacts and appends one entry. The write outlives client cancellation.
func (r *Recorder) Record(ctx context.Context, in audit.EntryInput) {
	entry, err := audit.NewEntry(in)
	if err != nil {
		r.fail(in, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := r.repo.Append(ctx, entry); err != nil {
		r.fail(in, err)
	}
}

func (r *Recorder) fail(in audit.EntryInput, err error) {
	if r.metrics != nil {
		r.metrics.AuditWriteFailures.Inc()
	}
	fields := []zap.Field{
		zap.String("action", in.Action),
		zap.String("request_id", in.RequestID),
		zap.Int("status_code", in.StatusCode),
		zap.Error(err),
	}
	if in.TenantID != nil {
		fields = append(fields, zap.String("tenant_id", in.TenantID.String()))
	}
	r.logger.Error("Failed to write audit entry", fields...)
}
