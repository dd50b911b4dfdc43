package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// fakeClock advances instantly on Sleep and remembers every wait
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// memorySyncLogs is an in-memory integration.SyncLogRepository
type memorySyncLogs struct {
	mu      sync.Mutex
	entries []integration.SyncLog
	err     error
}

func (m *memorySyncLogs) Append(_ context.Context, entry *integration.SyncLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memorySyncLogs) ListForIntegration(_ context.Context, _, integrationID uuid.UUID, _ int) ([]integration.SyncLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []integration.SyncLog
	for _, e := range m.entries {
		if e.IntegrationID == integrationID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memorySyncLogs) ListForResource(_ context.Context, _ uuid.UUID, resourceType string, resourceID uuid.UUID) ([]integration.SyncLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []integration.SyncLog
	for _, e := range m.entries {
		if e.ResourceType == resourceType && e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out, nil
}

func testPolicy() integration.RetryPolicy {
	return integration.RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    time.Second,
		Multiplier:  2,
	}
}

func newTestRunner(t *testing.T) (*Runner, *memorySyncLogs, *fakeClock, *telemetry.Metrics) {
	t.Helper()
	logs := &memorySyncLogs{}
	clock := newFakeClock()
	metrics := telemetry.NewMetrics()
	runner := NewRunner(logs, clock, RunnerConfig{Policy: testPolicy()}, metrics, zap.NewNop())
	return runner, logs, clock, metrics
}

func testJob() Job {
	return Job{
		TenantID:      uuid.New(),
		IntegrationID: uuid.New(),
		Direction:     integration.DirectionOutbound,
		ResourceType:  "purchase_order",
		ResourceID:    uuid.New(),
	}
}

func TestRunner_SucceedsFirstAttempt(t *testing.T) {
	runner, logs, clock, metrics := newTestRunner(t)

	result, err := runner.Run(context.Background(), testJob(), func(ctx context.Context, attempt int) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, result.RecordCount)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, integration.LogStatusSuccess, logs.entries[0].Status)
	assert.Equal(t, 1, logs.entries[0].Attempt)
	assert.Equal(t, 1, logs.entries[0].RecordCount)
	assert.Empty(t, clock.sleeps)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SyncRuns.WithLabelValues("outbound", "purchase_order", "success")))
}

func TestRunner_RetriesTransientWithBackoff(t *testing.T) {
	runner, logs, clock, _ := newTestRunner(t)

	var hooks []int
	job := testJob()
	job.OnRetry = func(_ context.Context, attempt int, err error, wait time.Duration) {
		hooks = append(hooks, attempt)
		assert.Error(t, err)
	}

	result, err := runner.Run(context.Background(), job, func(ctx context.Context, attempt int) (int, error) {
		if attempt < 3 {
			return 0, integration.ClassifyStatus(503, "maintenance")
		}
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, []int{1, 2}, hooks)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, clock.sleeps)

	require.Len(t, logs.entries, 3)
	assert.Equal(t, integration.LogStatusRetrying, logs.entries[0].Status)
	assert.Contains(t, logs.entries[0].ErrorDetail, "503")
	assert.Equal(t, integration.LogStatusRetrying, logs.entries[1].Status)
	assert.Equal(t, integration.LogStatusSuccess, logs.entries[2].Status)
	for i, e := range logs.entries {
		assert.Equal(t, i+1, e.Attempt)
		assert.Equal(t, job.IntegrationID, e.IntegrationID)
		assert.Equal(t, job.ResourceID, e.ResourceID)
	}
}

func TestRunner_ExhaustsTransientFailures(t *testing.T) {
	runner, logs, clock, metrics := newTestRunner(t)

	calls := 0
	result, err := runner.Run(context.Background(), testJob(), func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, integration.NewTransientError(errors.New("connection reset"))
	})

	var syncErr *integration.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.True(t, syncErr.Transient)
	assert.Equal(t, 3, syncErr.Attempts)
	assert.Equal(t, 400*time.Millisecond, syncErr.RetryAfter)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, result.Attempts)
	assert.Len(t, clock.sleeps, 2)

	require.Len(t, logs.entries, 3)
	assert.Equal(t, integration.LogStatusFailed, logs.entries[2].Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SyncRuns.WithLabelValues("outbound", "purchase_order", "exhausted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SyncAttempts.WithLabelValues("outbound", "purchase_order", "retrying")))
}

func TestRunner_StopsOnPermanentFailure(t *testing.T) {
	runner, logs, clock, _ := newTestRunner(t)

	calls := 0
	_, err := runner.Run(context.Background(), testJob(), func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, integration.ClassifyStatus(422, `{"error":"unknown vendor"}`)
	})

	var syncErr *integration.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.False(t, syncErr.Transient)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, integration.LogStatusFailed, logs.entries[0].Status)
	assert.Contains(t, logs.entries[0].ErrorDetail, "unknown vendor")
}

func TestRunner_UnclassifiedErrorsAreRetried(t *testing.T) {
	runner, _, _, _ := newTestRunner(t)

	calls := 0
	_, err := runner.Run(context.Background(), testJob(), func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunner_AttemptTimeoutIsTransient(t *testing.T) {
	logs := &memorySyncLogs{}
	runner := NewRunner(logs, newFakeClock(), RunnerConfig{
		Policy:         integration.RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, Multiplier: 1},
		AttemptTimeout: 5 * time.Millisecond,
	}, nil, zap.NewNop())

	calls := 0
	_, err := runner.Run(context.Background(), testJob(), func(ctx context.Context, attempt int) (int, error) {
		calls++
		<-ctx.Done()
		return 0, ctx.Err()
	})

	var syncErr *integration.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.True(t, syncErr.Transient)
	assert.Equal(t, 2, calls)
	assert.Len(t, logs.entries, 2)
}

func TestRunner_SyncLogFailureDoesNotChangeOutcome(t *testing.T) {
	logs := &memorySyncLogs{err: errors.New("disk full")}
	runner := NewRunner(logs, newFakeClock(), RunnerConfig{Policy: testPolicy()}, nil, zap.NewNop())

	result, err := runner.Run(context.Background(), testJob(), func(ctx context.Context, attempt int) (int, error) {
		return 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordCount)
}

func TestRunner_CancelledDuringBackoff(t *testing.T) {
	runner, _, _, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())

	job := testJob()
	job.OnRetry = func(context.Context, int, error, time.Duration) { cancel() }

	_, err := runner.Run(ctx, job, func(ctx context.Context, attempt int) (int, error) {
		return 0, integration.ClassifyStatus(502, "bad gateway")
	})

	var syncErr *integration.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, 1, syncErr.Attempts)
	assert.ErrorIs(t, err, context.Canceled)
}
