package handler

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends a rejection envelope, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// HandleError translates err into the rejection envelope. Domain errors keep
// their code, message and details; sync failures become SYNC_RETRYABLE (with
// Retry-After) or SYNC_REJECTED; anything else is logged and reported as
// INTERNAL_ERROR without its text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	var syncErr *integration.SyncError
	if errors.As(err, &syncErr) {
		code := syncErr.Code()
		msg := "the external system rejected the request: " + remoteMessage(syncErr)
		if syncErr.Transient {
			secs := int(math.Ceil(syncErr.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			msg = "the external system is unavailable; the record was kept and can be synced again later"
		}
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, msg, requestID))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		resp := dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID)
		if len(domainErr.Details) > 0 {
			resp.Details = domainErr.Details
		}
		c.JSON(dto.GetHTTPStatus(domainErr.Code), resp)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.CodeInternal, "an unexpected error occurred", requestID))
}

func remoteMessage(err *integration.SyncError) string {
	var remote *integration.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return "request refused"
}

// principal returns the resolved caller, answering AUTH_REQUIRED when the
// route was registered without the tenant resolver
func (h *BaseHandler) principal(c *gin.Context) (identity.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Error(c, dto.CodeAuthRequired, "authentication required")
	}
	return p, ok
}

// pathID parses a UUID path parameter
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.HandleError(c, shared.NewValidationError(name, "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the request body
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.HandleError(c, middleware.BindingError(err))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for bodies the client may leave out entirely
func (h *BaseHandler) bindOptionalJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err != nil {
		h.HandleError(c, middleware.BindingError(err))
		return false
	}
	return true
}

// bindQuery binds and validates the query string
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.HandleError(c, middleware.BindingError(err))
		return false
	}
	return true
}

// listFilter binds the common paging query
func (h *BaseHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return shared.Filter{}, false
	}
	return req.Filter(), true
}

// respondPage sends a paginated list: items as data, counters as meta
func respondPage[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}
