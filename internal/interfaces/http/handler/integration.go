package handler

import (
	"github.com/gin-gonic/gin"
	appintegration "github.com/vendorhub/backend/internal/application/integration"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// IntegrationHandler manages the tenant's ERP and risk provider connections
type IntegrationHandler struct {
	BaseHandler
	integrationService *appintegration.IntegrationService
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(integrationService *appintegration.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService}
}

type syncLogQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// List handles GET /admin/integrations
func (h *IntegrationHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.integrationService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Create handles POST /admin/integrations
func (h *IntegrationHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req appintegration.CreateIntegrationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	in, err := h.integrationService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, in.ID)
	h.Created(c, in)
}

// Update handles PATCH /admin/integrations/:id
func (h *IntegrationHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appintegration.UpdateIntegrationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	in, err := h.integrationService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, in)
}

// SyncLogs handles GET /admin/integrations/:id/sync-logs
func (h *IntegrationHandler) SyncLogs(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var q syncLogQuery
	if !h.bindQuery(c, &q) {
		return
	}

	logs, err := h.integrationService.SyncLogs(c.Request.Context(), p, id, q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}
