package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/audit"
	"github.com/vendorhub/backend/internal/domain/identity"
)

func auditRouter(recorder *memoryRecorder, handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append([]gin.HandlerFunc{NewAuditor(recorder).Audit("vendor", "vendor.create", "vendor")}, handlers...)
	router.POST("/vendors", chain...)
	return router
}

func TestAudit_RecordsSuccess(t *testing.T) {
	recorder := &memoryRecorder{}
	vendorID := uuid.New()
	p := identity.Principal{UserID: uuid.New(), TenantID: uuid.New(), Role: identity.RoleTenantUser}

	var handlerBody string
	router := gin.New()
	router.Use(RequestID())
	router.POST("/vendors",
		func(c *gin.Context) { c.Set(principalKey, p); c.Next() },
		NewAuditor(recorder).Audit("vendor", "vendor.create", "vendor"),
		func(c *gin.Context) {
			data, _ := io.ReadAll(c.Request.Body)
			handlerBody = string(data)
			SetAuditResource(c, vendorID)
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": vendorID}})
		})

	req := httptest.NewRequest(http.MethodPost, "/vendors?dry_run=false", strings.NewReader(`{"code":"ACME","name":"Acme"}`))
	req.Header.Set("User-Agent", "vh-test/1.0")
	w := serve(router, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), vendorID.String())
	assert.Equal(t, `{"code":"ACME","name":"Acme"}`, handlerBody, "handler must see the full body")

	entries := recorder.all()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "vendor", e.Module)
	assert.Equal(t, "vendor.create", e.Action)
	assert.Equal(t, "vendor", e.ResourceType)
	assert.Equal(t, vendorID.String(), e.ResourceID)
	assert.Equal(t, p.TenantID, *e.TenantID)
	assert.Equal(t, p.UserID, *e.ActorID)
	assert.Equal(t, http.StatusCreated, e.StatusCode)
	assert.Empty(t, e.ErrorCode)
	assert.Equal(t, w.Header().Get(RequestIDHeader), e.RequestID)
	assert.Equal(t, "vh-test/1.0", e.UserAgent)
	assert.Equal(t, map[string]any{"code": "ACME", "name": "Acme"}, e.Detail["body"])
	assert.Equal(t, map[string]any{"dry_run": "false"}, e.Detail["query"])
}

func TestAudit_RecordsFailureCode(t *testing.T) {
	recorder := &memoryRecorder{}
	router := auditRouter(recorder, func(c *gin.Context) {
		abortWithError(c, "CONFLICT", "a vendor with this code already exists")
	})

	w := serve(router, httptest.NewRequest(http.MethodPost, "/vendors", strings.NewReader(`{"code":"ACME"}`)))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", decode(t, w).Code)
	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, http.StatusConflict, entries[0].StatusCode)
	assert.Equal(t, "CONFLICT", entries[0].ErrorCode)
	assert.Equal(t, audit.OutcomeFailure, audit.OutcomeForStatus(entries[0].StatusCode))
}

func TestAudit_CredentialsNeverReachTheEntry(t *testing.T) {
	recorder := &memoryRecorder{}
	tenantID, userID := uuid.New(), uuid.New()
	router := gin.New()
	router.POST("/auth/login", NewAuditor(recorder).Audit("auth", "auth.login", "session"), func(c *gin.Context) {
		SetAuditActor(c, &tenantID, &userID)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"access_token": "eyJhbGciOi.secret.token"}})
	})

	body := `{"tenant_code":"acme","email":"a@acme.test","password":"hunter2-hunter2","nested":{"refresh_token":"r-123"}}`
	w := serve(router, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, tenantID, *entries[0].TenantID)
	assert.Equal(t, userID, *entries[0].ActorID)

	// the recorder redacts; NewEntry is what it runs first
	entry, err := audit.NewEntry(entries[0])
	require.NoError(t, err)
	stored := entry.Detail["body"].(map[string]any)
	assert.Equal(t, audit.RedactedPlaceholder, stored["password"])
	assert.Equal(t, audit.RedactedPlaceholder, stored["nested"].(map[string]any)["refresh_token"])
	assert.Equal(t, "acme", stored["tenant_code"])
}

func TestAudit_NonJSONBodyKeepsSizeOnly(t *testing.T) {
	recorder := &memoryRecorder{}
	router := auditRouter(recorder, okHandler)

	serve(router, httptest.NewRequest(http.MethodPost, "/vendors", strings.NewReader("password=hunter2")))

	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, 16, entries[0].Detail["body_size"])
	assert.NotContains(t, entries[0].Detail, "body")
}

func TestAudit_OversizedBody(t *testing.T) {
	recorder := &memoryRecorder{}
	router := gin.New()
	router.POST("/vendors", func(c *gin.Context) {
		// no declared length, so only the reader can enforce the limit
		c.Request.ContentLength = -1
		c.Next()
	}, BodyLimit(8), NewAuditor(recorder).Audit("vendor", "vendor.create", "vendor"), okHandler)

	w := serve(router, httptest.NewRequest(http.MethodPost, "/vendors", strings.NewReader(`{"name":"far too long"}`)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, http.StatusRequestEntityTooLarge, entries[0].StatusCode)
}

func TestAudit_EmptyResponseBody(t *testing.T) {
	recorder := &memoryRecorder{}
	router := auditRouter(recorder, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := serve(router, httptest.NewRequest(http.MethodPost, "/vendors", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, http.StatusNoContent, entries[0].StatusCode)
	assert.Nil(t, entries[0].ActorID)
}
