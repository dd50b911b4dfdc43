package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PrincipalResolver maps token claims to the live user and tenant
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID, claimedTenantID uuid.UUID) (identity.Principal, error)
}

// TenantResolver loads the caller's user and tenant from storage and attaches
// the resulting principal to the gin and request contexts. Must run after JWTAuth.
// Tenant and role in the token are never used past this point.
func TenantResolver(resolver PrincipalResolver, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortWithError(c, dto.CodeAuthRequired, "authentication required")
			return
		}
		userID, uerr := claims.UserUUID()
		tenantID, terr := claims.TenantUUID()
		if uerr != nil || terr != nil {
			abortWithError(c, shared.CodeInvalidToken, "invalid token")
			return
		}

		p, err := resolver.Resolve(c.Request.Context(), userID, tenantID)
		if err != nil {
			code := shared.CodeOf(err)
			if code == "" {
				log.Error("Failed to resolve principal", zap.String("user_id", userID.String()), zap.Error(err))
				abortWithError(c, dto.CodeInternal, "internal server error")
				return
			}
			log.Warn("Tenant resolution rejected request",
				zap.String("user_id", userID.String()),
				zap.String("code", code))
			abortWithError(c, code, err.Error())
			return
		}

		c.Set(principalKey, p)
		ctx := identity.WithPrincipal(c.Request.Context(), p)
		ctx, _ = logger.WithIdentity(ctx, logger.FromContext(ctx), p.TenantID.String(), p.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
