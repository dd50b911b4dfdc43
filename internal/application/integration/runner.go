package integration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Operation performs one attempt against the external system and returns
// the number of records transferred
type Operation func(ctx context.Context, attempt int) (int, error)

// RetryHook is called after a transient failure, before the backoff wait
type RetryHook func(ctx context.Context, attempt int, err error, wait time.Duration)

// Job identifies what a sync run is about
type Job struct {
	TenantID      uuid.UUID
	IntegrationID uuid.UUID
	Direction     integration.Direction
	ResourceType  string
	ResourceID    uuid.UUID
	OnRetry       RetryHook
}

// Result summarizes a finished run
type Result struct {
	Attempts    int
	RecordCount int
}

// RunnerConfig configures a Runner
type RunnerConfig struct {
	Policy integration.RetryPolicy
	// AttemptTimeout bounds a single remote call; zero means no per-attempt bound
	AttemptTimeout time.Duration
}

// Runner executes the retry state machine shared by every external sync:
// attempt, classify, back off, attempt again, until success, a permanent
// failure, or the attempt budget is spent. Every attempt leaves a sync log entry.
type Runner struct {
	logs    integration.SyncLogRepository
	clock   integration.Clock
	config  RunnerConfig
	metrics *telemetry.Metrics
	logger  *zap.Logger
}

// NewRunner creates a sync runner. metrics may be nil.
func NewRunner(
	logs integration.SyncLogRepository,
	clock integration.Clock,
	config RunnerConfig,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *Runner {
	if clock == nil {
		clock = integration.SystemClock{}
	}
	return &Runner{
		logs:    logs,
		clock:   clock,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// Clock returns the runner's time source
func (r *Runner) Clock() integration.Clock {
	return r.clock
}

// Run executes op until it succeeds or the run ends in failure. On failure the
// returned error is an *integration.SyncError wrapping the last attempt's error.
// Callers are expected to pass a context detached from client cancellation.
func (r *Runner) Run(ctx context.Context, job Job, op Operation) (Result, error) {
	ctx, span := telemetry.StartSpan(ctx, "sync."+string(job.Direction)+"."+job.ResourceType,
		attribute.String("tenant.id", job.TenantID.String()),
		attribute.String("sync.integration_id", job.IntegrationID.String()),
		attribute.String("sync.resource_id", job.ResourceID.String()),
	)

	log := r.logger.With(
		zap.String("tenant_id", job.TenantID.String()),
		zap.String("integration_id", job.IntegrationID.String()),
		zap.String("direction", string(job.Direction)),
		zap.String("resource_type", job.ResourceType),
		zap.String("resource_id", job.ResourceID.String()),
	)

	maxAttempts := r.config.Policy.Attempts()
	var result Result
	for attempt := 1; ; attempt++ {
		result.Attempts = attempt

		count, elapsed, err := r.attempt(ctx, op, attempt)
		if err == nil {
			result.RecordCount = count
			r.record(ctx, job, attempt, integration.LogStatusSuccess, count, "", elapsed)
			r.finish(job, "success")
			log.Info("Sync succeeded", zap.Int("attempt", attempt), zap.Duration("duration", elapsed))
			telemetry.EndSpan(span, nil)
			return result, nil
		}

		transient := integration.IsTransient(err)
		if !transient || attempt >= maxAttempts {
			r.record(ctx, job, attempt, integration.LogStatusFailed, 0, err.Error(), elapsed)
			outcome := "rejected"
			if transient {
				outcome = "exhausted"
			}
			r.finish(job, outcome)
			log.Warn("Sync failed",
				zap.Int("attempt", attempt),
				zap.Bool("transient", transient),
				zap.Error(err))

			syncErr := &integration.SyncError{Transient: transient, Attempts: attempt, Err: err}
			if transient {
				syncErr.RetryAfter = r.config.Policy.Backoff(attempt)
			}
			telemetry.EndSpan(span, syncErr)
			return result, syncErr
		}

		wait := r.config.Policy.Backoff(attempt)
		r.record(ctx, job, attempt, integration.LogStatusRetrying, 0, err.Error(), elapsed)
		log.Info("Sync attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err))

		if job.OnRetry != nil {
			job.OnRetry(ctx, attempt, err, wait)
		}

		if sleepErr := r.clock.Sleep(ctx, wait); sleepErr != nil {
			r.finish(job, "cancelled")
			syncErr := &integration.SyncError{Transient: true, Attempts: attempt, RetryAfter: wait, Err: errors.Join(err, sleepErr)}
			telemetry.EndSpan(span, syncErr)
			return result, syncErr
		}
	}
}

func (r *Runner) attempt(ctx context.Context, op Operation, attempt int) (int, time.Duration, error) {
	attemptCtx := ctx
	if r.config.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, r.config.AttemptTimeout)
		defer cancel()
	}

	start := r.clock.Now()
	count, err := op(attemptCtx, attempt)
	elapsed := r.clock.Now().Sub(start)

	// a per-attempt deadline is a timeout of the remote call, not of the run
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		err = integration.NewTransientError(err)
	}
	return count, elapsed, err
}

// record appends a sync log entry. A log write failure never changes the run.
func (r *Runner) record(ctx context.Context, job Job, attempt int, status integration.LogStatus, count int, detail string, elapsed time.Duration) {
	if r.metrics != nil {
		r.metrics.SyncAttempts.WithLabelValues(string(job.Direction), job.ResourceType, string(status)).Inc()
		r.metrics.SyncDuration.WithLabelValues(string(job.Direction), job.ResourceType).Observe(elapsed.Seconds())
	}

	entry := &integration.SyncLog{
		ID:            uuid.New(),
		TenantID:      job.TenantID,
		IntegrationID: job.IntegrationID,
		Direction:     job.Direction,
		ResourceType:  job.ResourceType,
		ResourceID:    job.ResourceID,
		Attempt:       attempt,
		Status:        status,
		RecordCount:   count,
		ErrorDetail:   truncate(detail, 2000),
		Duration:      elapsed,
		CreatedAt:     r.clock.Now(),
	}
	if err := r.logs.Append(ctx, entry); err != nil {
		r.logger.Error("Failed to write sync log",
			zap.String("resource_id", job.ResourceID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
}

func (r *Runner) finish(job Job, outcome string) {
	if r.metrics != nil {
		r.metrics.SyncRuns.WithLabelValues(string(job.Direction), job.ResourceType, outcome).Inc()
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
