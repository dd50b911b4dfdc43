package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/vendorhub/backend/internal/application/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles registration, login, token refresh and logout
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, attempt, err := h.authService.Register(c.Request.Context(), req)
	middleware.SetAuditActor(c, attempt.TenantID, attempt.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, session.Tenant.ID)
	h.Created(c, session)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, attempt, err := h.authService.Login(c.Request.Context(), req)
	middleware.SetAuditActor(c, attempt.TenantID, attempt.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, session.User.ID)
	h.Success(c, session)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Logout handles POST /auth/logout. The presented access token is revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Error(c, shared.CodeInvalidToken, "invalid token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), p, claims); err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, p.UserID)
	h.Success(c, gin.H{"message": "logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	me, err := h.authService.Me(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, me)
}
