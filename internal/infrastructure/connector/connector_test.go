package connector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/integration"
)

func newIntegration(t *testing.T, kind integration.Kind, baseURL string) *integration.Integration {
	t.Helper()
	in, err := integration.NewIntegration(uuid.New(), nil, kind, "remote", baseURL, "key-123")
	require.NoError(t, err)
	return in
}

func samplePO() integration.ERPPurchaseOrder {
	return integration.ERPPurchaseOrder{
		Number:    "PO-1",
		VendorRef: "ACME",
		Currency:  "USD",
		Amount:    decimal.RequireFromString("20.00"),
		LineItems: []integration.ERPLineItem{{
			SKU:       "A-1",
			Quantity:  decimal.NewFromInt(2),
			UnitPrice: decimal.RequireFromString("10.00"),
		}},
	}
}

func TestERPClient_CreatePurchaseOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/purchase-orders", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		assert.Equal(t, "po-key", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PO-1", body["number"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ERP-42"}`))
	}))
	defer server.Close()

	client := NewERPClient(newIntegration(t, integration.KindERP, server.URL), Options{})
	id, err := client.CreatePurchaseOrder(context.Background(), samplePO(), "po-key")

	require.NoError(t, err)
	assert.Equal(t, "ERP-42", id)
}

func TestERPClient_UpdatePurchaseOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/purchase-orders/ERP-42", r.URL.Path)
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewERPClient(newIntegration(t, integration.KindERP, server.URL), Options{})
	require.NoError(t, client.UpdatePurchaseOrder(context.Background(), "ERP-42", samplePO()))
}

func TestERPClient_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		transient bool
	}{
		{"server error", http.StatusInternalServerError, true},
		{"unavailable", http.StatusServiceUnavailable, true},
		{"throttled", http.StatusTooManyRequests, true},
		{"timeout", http.StatusRequestTimeout, true},
		{"bad request", http.StatusBadRequest, false},
		{"unprocessable", http.StatusUnprocessableEntity, false},
		{"unauthorized", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			}))
			defer server.Close()

			client := NewERPClient(newIntegration(t, integration.KindERP, server.URL), Options{})
			_, err := client.CreatePurchaseOrder(context.Background(), samplePO(), "k")

			var re *integration.RemoteError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.status, re.StatusCode)
			assert.Equal(t, tt.transient, re.Transient)
			assert.Contains(t, re.Message, "nope")
		})
	}
}

func TestERPClient_MissingIDIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewERPClient(newIntegration(t, integration.KindERP, server.URL), Options{})
	_, err := client.CreatePurchaseOrder(context.Background(), samplePO(), "k")

	require.Error(t, err)
	assert.False(t, integration.IsTransient(err))
}

func TestERPClient_TransportFailureIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewERPClient(newIntegration(t, integration.KindERP, server.URL), Options{Timeout: 20 * time.Millisecond})
	_, err := client.CreatePurchaseOrder(context.Background(), samplePO(), "k")

	require.Error(t, err)
	assert.True(t, integration.IsTransient(err))
}

func TestERPClient_CancelledIsNotRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewERPClient(newIntegration(t, integration.KindERP, server.URL), Options{})
	_, err := client.CreatePurchaseOrder(ctx, samplePO(), "k")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, integration.IsTransient(err))
}

func TestRatingClient_FetchRating(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/vendors/ACME/rating", r.URL.Path)
		_, _ = w.Write([]byte(`{"score":72.5,"grade":"B","reference":"rpt-9","as_of":"2026-01-02T00:00:00Z"}`))
	}))
	defer server.Close()

	client := NewRatingClient(newIntegration(t, integration.KindRiskProvider, server.URL), Options{})
	rating, err := client.FetchRating(context.Background(), "ACME")

	require.NoError(t, err)
	assert.Equal(t, 72.5, rating.Score)
	assert.Equal(t, "B", rating.Grade)
	assert.Equal(t, "rpt-9", rating.Reference)
	assert.Equal(t, 2026, rating.AsOf.Year())
}

func TestRatingClient_OutOfRangeScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"score":140}`))
	}))
	defer server.Close()

	client := NewRatingClient(newIntegration(t, integration.KindRiskProvider, server.URL), Options{})
	_, err := client.FetchRating(context.Background(), "ACME")

	require.Error(t, err)
	assert.False(t, integration.IsTransient(err))
}

func TestFactory(t *testing.T) {
	f := NewFactory(Options{})

	erp := newIntegration(t, integration.KindERP, "https://erp.example.com")
	client, err := f.ERP(erp)
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = f.RiskRating(erp)
	assert.Error(t, err)

	erp.Enabled = false
	_, err = f.ERP(erp)
	assert.ErrorIs(t, err, integration.ErrNotConfigured)

	_, err = f.ERP(nil)
	assert.ErrorIs(t, err, integration.ErrNotConfigured)
}
