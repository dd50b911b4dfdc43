package handler

import (
	"github.com/gin-gonic/gin"
	apppartner "github.com/vendorhub/backend/internal/application/partner"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// VendorHandler serves the vendor registry
type VendorHandler struct {
	BaseHandler
	vendorService *apppartner.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *apppartner.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// List handles GET /vendors
func (h *VendorHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.vendorService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Create handles POST /vendors
func (h *VendorHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req apppartner.CreateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, vendor.ID)
	h.Created(c, vendor)
}

// Update handles PATCH /vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req apppartner.UpdateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}
