package handler

import (
	"github.com/gin-gonic/gin"
	appsurvey "github.com/vendorhub/backend/internal/application/survey"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// SurveyHandler serves vendor surveys and their responses
type SurveyHandler struct {
	BaseHandler
	surveyService *appsurvey.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *appsurvey.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// List handles GET /surveys
func (h *SurveyHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.surveyService.List(c.Request.Context(), p, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get handles GET /surveys/:id
func (h *SurveyHandler) Get(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, survey)
}

// Create handles POST /surveys
func (h *SurveyHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req appsurvey.CreateSurveyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.SetAuditResource(c, survey.ID)
	h.Created(c, survey)
}

// Close handles POST /surveys/:id/close
func (h *SurveyHandler) Close(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.Close(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, survey)
}

// Respond handles POST /surveys/:id/responses
func (h *SurveyHandler) Respond(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appsurvey.SubmitResponseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	answers, err := h.surveyService.Respond(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	middleware.AddAuditDetail(c, "response_id", answers.ID.String())
	h.Created(c, answers)
}

// Responses handles GET /surveys/:id/responses
func (h *SurveyHandler) Responses(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	answers, err := h.surveyService.Responses(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, answers)
}
