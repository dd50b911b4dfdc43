package handler

import (
	"github.com/gin-gonic/gin"
	appcontract "github.com/vendorhub/backend/internal/application/contract"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// ContractHandler serves vendor contracts
type ContractHandler struct {
	BaseHandler
	contractService *appcontract.ContractService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractService *appcontract.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// List handles GET /contracts
func (h *ContractHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.contractService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	ct, err := h.contractService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ct)
}

// Create handles POST /contracts
func (h *ContractHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req appcontract.CreateContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ct, err := h.contractService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, ct.ID)
	h.Created(c, ct)
}

// ChangeStatus handles POST /contracts/:id/status
func (h *ContractHandler) ChangeStatus(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appcontract.ChangeContractStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ct, err := h.contractService.ChangeStatus(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ct)
}
