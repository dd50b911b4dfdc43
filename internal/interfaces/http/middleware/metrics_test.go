package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
)

func TestHTTPMetrics(t *testing.T) {
	m := telemetry.NewMetrics()
	router := gin.New()
	router.Use(HTTPMetrics(m))
	router.GET("/vendors/:id", okHandler)

	serve(router, httptest.NewRequest(http.MethodGet, "/vendors/1", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/vendors/2", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/vendors/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPInFlight))
}
