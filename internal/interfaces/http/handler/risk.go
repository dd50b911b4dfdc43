package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprisk "github.com/vendorhub/backend/internal/application/risk"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// RiskHandler serves vendor risk assessments
type RiskHandler struct {
	BaseHandler
	assessmentService *apprisk.AssessmentService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(assessmentService *apprisk.AssessmentService) *RiskHandler {
	return &RiskHandler{assessmentService: assessmentService}
}

type assessmentQuery struct {
	VendorID string `form:"vendor_id" binding:"omitempty,uuid"`
}

// List handles GET /risk/assessments
func (h *RiskHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var q assessmentQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	var req apprisk.ListAssessmentsRequest
	if q.VendorID != "" {
		vendorID := uuid.MustParse(q.VendorID)
		req.VendorID = &vendorID
	}

	page, err := h.assessmentService.List(c.Request.Context(), p, req, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /risk/assessments/:id
func (h *RiskHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	assessment, err := h.assessmentService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assessment)
}

// Create handles POST /risk/assessments
func (h *RiskHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req apprisk.CreateAssessmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assessment, err := h.assessmentService.CreateManual(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, assessment.ID)
	h.Created(c, assessment)
}

// Pull handles POST /risk/vendors/:id/assessments. A provider failure is recorded on
// the assessment and still answers 201.
func (h *RiskHandler) Pull(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	vendorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	assessment, err := h.assessmentService.Pull(c.Request.Context(), p, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, assessment.ID)
	middleware.AddAuditDetail(c, "vendor_id", vendorID.String())
	middleware.AddAuditDetail(c, "sync_status", assessment.SyncStatus)
	h.Created(c, assessment)
}
