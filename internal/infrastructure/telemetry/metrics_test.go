package telemetry

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.AuditWriteFailures.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.AuditWriteFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.AuditWriteFailures))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.AuditWriteFailures.Inc()
	m.SyncAttempts.WithLabelValues("outbound", "purchase_order", "failed").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "vendorhub_audit_write_failures_total 1")
	assert.Contains(t, string(body), `vendorhub_sync_attempts_total{direction="outbound",resource_type="purchase_order",status="failed"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
