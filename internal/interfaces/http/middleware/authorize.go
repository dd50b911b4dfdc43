package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Authorizer is the authorization gate. It checks the resolved principal's
// role against an immutable policy.
type Authorizer struct {
	policy  *identity.Policy
	metrics *telemetry.Metrics
	logger  *zap.Logger
}

// NewAuthorizer creates a new Authorizer. metrics may be nil.
func NewAuthorizer(policy *identity.Policy, metrics *telemetry.Metrics, logger *zap.Logger) *Authorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authorizer{policy: policy, metrics: metrics, logger: logger}
}

// Require admits the request only when the principal's role may perform op.
// A denial names the required roles in the log line and the audit detail.
func (a *Authorizer) Require(op identity.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortWithError(c, dto.CodeAuthRequired, "authentication required")
			return
		}
		if a.policy.Allows(op, p.Role) {
			c.Next()
			return
		}

		required := a.policy.RequiredRoles(op)
		names := make([]string, len(required))
		for i, r := range required {
			names[i] = string(r)
		}

		if a.metrics != nil {
			a.metrics.AuthzDenials.WithLabelValues(string(op)).Inc()
		}
		a.logger.Warn("Permission denied",
			zap.String("operation", string(op)),
			zap.String("tenant_id", p.TenantID.String()),
			zap.String("user_id", p.UserID.String()),
			zap.String("role", string(p.Role)),
			zap.Strings("required_roles", names),
			zap.String("path", c.Request.URL.Path))

		AddAuditDetail(c, "permission", map[string]any{
			"operation":      string(op),
			"role":           string(p.Role),
			"required_roles": names,
		})
		abortWithError(c, shared.CodeForbidden, "your role is not allowed to perform this operation")
	}
}
