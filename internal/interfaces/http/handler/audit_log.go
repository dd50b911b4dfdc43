package handler

import (
	"github.com/gin-gonic/gin"
	appaudit "github.com/vendorhub/backend/internal/application/audit"
)

// AuditLogHandler serves the read-only audit trail of the caller's tenant
type AuditLogHandler struct {
	BaseHandler
	queryService *appaudit.QueryService
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(queryService *appaudit.QueryService) *AuditLogHandler {
	return &AuditLogHandler{queryService: queryService}
}

// List handles GET /admin/audit-logs?module=&action=&from=&to=&limit=
func (h *AuditLogHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req appaudit.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}

	entries, err := h.queryService.List(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
