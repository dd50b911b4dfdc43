package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/audit"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
)

// withPrincipal stands in for JWTAuth and TenantResolver
func withPrincipal(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, identity.Principal{UserID: uuid.New(), TenantID: uuid.New(), Role: role})
		c.Next()
	}
}

func newTestPolicy(t *testing.T, overrides map[string][]string) *identity.Policy {
	t.Helper()
	policy, err := identity.NewPolicy(identity.DefaultRoleSets(), overrides)
	require.NoError(t, err)
	return policy
}

func TestAuthorizer_Require(t *testing.T) {
	metrics := telemetry.NewMetrics()
	authz := NewAuthorizer(newTestPolicy(t, nil), metrics, nil)

	tests := []struct {
		name   string
		role   identity.Role
		op     identity.Operation
		status int
	}{
		{"admin may sync purchase orders", identity.RoleTenantAdmin, identity.OpPurchaseOrderSync, http.StatusOK},
		{"user may not sync purchase orders", identity.RoleTenantUser, identity.OpPurchaseOrderSync, http.StatusForbidden},
		{"evaluator may assess risk", identity.RoleEvaluator, identity.OpRiskAssess, http.StatusOK},
		{"vendor user may not read vendors", identity.RoleVendorUser, identity.OpVendorRead, http.StatusForbidden},
		{"unknown operation is denied", identity.RoleTenantAdmin, identity.Operation("reports.export"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(withPrincipal(tt.role))
			router.GET("/test", authz.Require(tt.op), okHandler)

			w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, "PERMISSION_DENIED", decode(t, w).Code)
			}
		})
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AuthzDenials.WithLabelValues(string(identity.OpPurchaseOrderSync))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AuthzDenials.WithLabelValues("reports.export")))
}

func TestAuthorizer_ConfigOverride(t *testing.T) {
	authz := NewAuthorizer(newTestPolicy(t, map[string][]string{
		string(identity.OpPurchaseOrderSync): {"tenant_admin", "tenant_user"},
		string(identity.OpAuditQuery):        {},
	}), nil, nil)

	router := gin.New()
	router.GET("/sync", withPrincipal(identity.RoleTenantUser), authz.Require(identity.OpPurchaseOrderSync), okHandler)
	router.GET("/audit", withPrincipal(identity.RoleTenantAdmin), authz.Require(identity.OpAuditQuery), okHandler)

	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/sync", nil)).Code)
	assert.Equal(t, http.StatusForbidden, serve(router, httptest.NewRequest(http.MethodGet, "/audit", nil)).Code)
}

func TestAuthorizer_DenialIsAudited(t *testing.T) {
	recorder := &memoryRecorder{}
	authz := NewAuthorizer(newTestPolicy(t, nil), nil, nil)

	router := gin.New()
	router.POST("/procurement/purchase-orders/:id/sync",
		withPrincipal(identity.RoleTenantUser),
		NewAuditor(recorder).Audit("procurement", "procurement.purchase_order.sync", "purchase_order"),
		authz.Require(identity.OpPurchaseOrderSync),
		okHandler)

	w := serve(router, httptest.NewRequest(http.MethodPost, "/procurement/purchase-orders/po-1/sync", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, http.StatusForbidden, entries[0].StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", entries[0].ErrorCode)
	assert.Equal(t, "po-1", entries[0].ResourceID)
	require.NotNil(t, entries[0].ActorID)

	// the stored entry passes through redaction
	stored, err := audit.NewEntry(entries[0])
	require.NoError(t, err)
	denial, ok := stored.Detail["permission"].(map[string]any)
	require.True(t, ok, "denial detail missing: %v", stored.Detail)
	assert.Equal(t, string(identity.OpPurchaseOrderSync), denial["operation"])
	assert.Equal(t, "tenant_user", denial["role"])
	assert.Equal(t, []string{"tenant_admin"}, denial["required_roles"])
}

func TestAuthorizer_RequiresPrincipal(t *testing.T) {
	router := gin.New()
	router.GET("/test", NewAuthorizer(newTestPolicy(t, nil), nil, nil).Require(identity.OpVendorRead), okHandler)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_REQUIRED", decode(t, w).Code)
}
