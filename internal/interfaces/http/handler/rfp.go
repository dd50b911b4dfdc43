package handler

import (
	"github.com/gin-gonic/gin"
	appbid "github.com/vendorhub/backend/internal/application/bid"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// RFPHandler serves requests for proposal
type RFPHandler struct {
	BaseHandler
	rfpService *appbid.RFPService
}

// NewRFPHandler creates a new RFP handler
func NewRFPHandler(rfpService *appbid.RFPService) *RFPHandler {
	return &RFPHandler{rfpService: rfpService}
}

// List handles GET /bids/rfps
func (h *RFPHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.rfpService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /bids/rfps/:id
func (h *RFPHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	rfp, err := h.rfpService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rfp)
}

// Create handles POST /bids/rfps
func (h *RFPHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req appbid.CreateRFPRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, rfp.ID)
	h.Created(c, rfp)
}

// ChangeStatus handles POST /bids/rfps/:id/status
func (h *RFPHandler) ChangeStatus(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appbid.ChangeRFPStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.ChangeStatus(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rfp)
}
