package handler

import (
	"github.com/gin-gonic/gin"
	appprocurement "github.com/vendorhub/backend/internal/application/procurement"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// PurchaseOrderHandler serves purchase orders and their ERP sync
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *appprocurement.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(orderService *appprocurement.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// List handles GET /procurement/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.orderService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /procurement/purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	po, err := h.orderService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// Create handles POST /procurement/purchase-orders.
// The order is stored before the ERP push; a failed push still answers 201
// with the sync outcome attached.
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req appprocurement.CreatePurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	po, err := h.orderService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, po.ID)
	middleware.AddAuditDetail(c, "sync_status", po.ERPSync.Status)
	h.Created(c, po)
}

// Sync handles POST /procurement/purchase-orders/:id/sync
func (h *PurchaseOrderHandler) Sync(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	po, err := h.orderService.Sync(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.AddAuditDetail(c, "sync_status", po.ERPSync.Status)
	h.Success(c, po)
}

// UpdateStatus handles POST /procurement/purchase-orders/:id/status
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appprocurement.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	po, err := h.orderService.UpdateStatus(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}
