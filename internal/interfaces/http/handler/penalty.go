package handler

import (
	"github.com/gin-gonic/gin"
	appperformance "github.com/vendorhub/backend/internal/application/performance"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// PenaltyHandler serves performance penalties and their approval
type PenaltyHandler struct {
	BaseHandler
	penaltyService *appperformance.PenaltyService
}

// NewPenaltyHandler creates a new penalty handler
func NewPenaltyHandler(penaltyService *appperformance.PenaltyService) *PenaltyHandler {
	return &PenaltyHandler{penaltyService: penaltyService}
}

// List handles GET /performance/penalties
func (h *PenaltyHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.penaltyService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /performance/penalties/:id
func (h *PenaltyHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	penalty, err := h.penaltyService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, penalty)
}

// Create handles POST /performance/penalties
func (h *PenaltyHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req appperformance.CreatePenaltyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	penalty, err := h.penaltyService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, penalty.ID)
	h.Created(c, penalty)
}

// Approve handles POST /performance/penalties/:id/approve
func (h *PenaltyHandler) Approve(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appperformance.ApprovePenaltyRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	penalty, err := h.penaltyService.Approve(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, penalty)
}

// Reject handles POST /performance/penalties/:id/reject
func (h *PenaltyHandler) Reject(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appperformance.RejectPenaltyRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	penalty, err := h.penaltyService.Reject(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, penalty)
}
