// Package middleware provides the HTTP middleware chain of the VendorHub API:
// request ids, credential verification, tenant resolution, authorization and audit.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
)

// Gin context keys
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"

	claimsKey          = "auth.claims"
	principalKey       = "auth.principal"
	auditResourceIDKey = "audit.resource_id"
	auditTenantKey     = "audit.tenant_id"
	auditActorKey      = "audit.actor_id"
	auditDetailKey     = "audit.detail"
)

// GetRequestID returns the request id assigned by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// GetClaims returns the verified token claims, or nil before JWTAuth ran
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetPrincipal returns the principal resolved by TenantResolver
func GetPrincipal(c *gin.Context) (identity.Principal, bool) {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(identity.Principal); ok {
			return p, true
		}
	}
	return identity.Principal{}, false
}

// SetAuditResource names the resource a request created or touched
func SetAuditResource(c *gin.Context, id uuid.UUID) {
	c.Set(auditResourceIDKey, id.String())
}

// SetAuditActor names the tenant and actor of an unauthenticated request
// (login, registration) as far as the handler could resolve them.
func SetAuditActor(c *gin.Context, tenantID, actorID *uuid.UUID) {
	if tenantID != nil {
		c.Set(auditTenantKey, *tenantID)
	}
	if actorID != nil {
		c.Set(auditActorKey, *actorID)
	}
}

// AddAuditDetail adds one key to the detail of the request's audit entry
func AddAuditDetail(c *gin.Context, key string, value any) {
	detail, _ := c.Get(auditDetailKey)
	m, ok := detail.(map[string]any)
	if !ok {
		m = make(map[string]any)
		c.Set(auditDetailKey, m)
	}
	m[key] = value
}

// abortWithError rejects the request with the standard envelope
func abortWithError(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, GetRequestID(c)))
}
