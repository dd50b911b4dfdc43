package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.False(t, tp.Enabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

// retainedExporter keeps exported spans readable after the provider shuts down
type retainedExporter struct {
	*tracetest.InMemoryExporter
}

func (retainedExporter) Shutdown(context.Context) error { return nil }

func TestNewTracerProvider_ExportsTaggedSpans(t *testing.T) {
	prev, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		otel.SetTextMapPropagator(prevProp)
	})

	exporter := retainedExporter{tracetest.NewInMemoryExporter()}
	cfg := config.TelemetryConfig{Enabled: true, ServiceName: "vendorhub-test", SamplingRatio: 1}
	tp, err := NewTracerProvider(context.Background(), cfg, zap.NewNop(),
		WithExporter(exporter), WithDeployment("staging", "1.2.3"))
	require.NoError(t, err)
	assert.True(t, tp.Enabled())

	_, span := StartSpan(context.Background(), "po.sync")
	EndSpan(span, nil)

	// shutdown drains the batcher into the exporter
	require.NoError(t, tp.Shutdown(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "po.sync", spans[0].Name)
	attrs := map[string]string{}
	for _, kv := range spans[0].Resource.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "vendorhub-test", attrs["service.name"])
	assert.Equal(t, "staging", attrs["deployment.environment.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor(1).Description(), "AlwaysOnSampler")
	assert.Equal(t, "AlwaysOffSampler", samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
}

func TestEndSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartClientSpan(context.Background(), "erp.create")
	EndSpan(span, errors.New("boom"))

	_, ok := StartSpan(context.Background(), "noop")
	EndSpan(ok, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, codes.Ok, spans[1].Status().Code)
}
