package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// AuthHeaderKey is the header carrying the bearer token
	AuthHeaderKey = "Authorization"
	// BearerPrefix is the expected scheme of the authorization header
	BearerPrefix = "Bearer "
)

// JWTConfig configures JWTAuth
type JWTConfig struct {
	Service *auth.JWTService
	// Blacklist may be nil; revocation is then not checked
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// JWTAuth verifies the bearer access token: signature, algorithm, expiry and
// token type first, then revocation. It touches no tenant or user data; the
// claims it stores are hints for TenantResolver.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortWithError(c, dto.CodeAuthRequired, "authentication required")
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			abortWithError(c, shared.CodeInvalidToken, "authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := cfg.Service.ValidateAccessToken(token)
		if err != nil {
			log.Debug("JWT authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, shared.CodeTokenExpired, "token has expired")
				return
			}
			abortWithError(c, shared.CodeInvalidToken, "invalid token")
			return
		}

		if cfg.Blacklist != nil {
			revoked, err := isRevoked(c, cfg.Blacklist, claims)
			if err != nil {
				// fail closed: a token that may be revoked is not accepted
				log.Error("Token blacklist lookup failed", zap.String("jti", claims.ID), zap.Error(err))
				abortWithError(c, dto.CodeInternal, "authentication is temporarily unavailable")
				return
			}
			if revoked {
				abortWithError(c, shared.CodeTokenRevoked, "token has been revoked")
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func isRevoked(c *gin.Context, blacklist auth.TokenBlacklist, claims *auth.Claims) (bool, error) {
	ctx := c.Request.Context()
	revoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil || revoked {
		return revoked, err
	}
	if claims.IssuedAt == nil {
		return false, nil
	}
	return blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
}
