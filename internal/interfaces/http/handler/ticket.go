package handler

import (
	"github.com/gin-gonic/gin"
	apphelpdesk "github.com/vendorhub/backend/internal/application/helpdesk"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// TicketHandler serves helpdesk tickets
type TicketHandler struct {
	BaseHandler
	ticketService *apphelpdesk.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *apphelpdesk.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// List handles GET /helpdesk/tickets
func (h *TicketHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.ticketService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /helpdesk/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.ticketService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Create handles POST /helpdesk/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req apphelpdesk.CreateTicketRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, ticket.ID)
	h.Created(c, ticket)
}

// ChangeStatus handles POST /helpdesk/tickets/:id/status
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req apphelpdesk.ChangeTicketStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.ChangeStatus(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}
