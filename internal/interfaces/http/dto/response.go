package dto

import "github.com/vendorhub/backend/internal/domain/shared"

// Response represents a standard API response
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Meta      *Meta  `json:"meta,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewPageResponse creates a success response from a paginated result.
// The items become data, the counters become meta.
func NewPageResponse[T any](page shared.Paginated[T]) Response {
	return Response{
		Success: true,
		Data:    page.Items,
		Meta: &Meta{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	}
}

// NewErrorResponse creates a rejection envelope
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success:   false,
		Error:     message,
		Code:      code,
		RequestID: requestID,
	}
}

// NewValidationErrorResponse creates a VALIDATION_ERROR envelope with field details
func NewValidationErrorResponse(message, requestID string, details []shared.FieldError) Response {
	resp := NewErrorResponse(CodeValidation, message, requestID)
	if len(details) > 0 {
		resp.Details = details
	}
	return resp
}

// ListRequest represents common list/pagination query parameters
type ListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status" binding:"max=50"`
	Search    string `form:"search" binding:"max=100"`
	SortBy    string `form:"sort_by" binding:"max=50"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// Filter converts the query into a normalized repository filter
func (r ListRequest) Filter() shared.Filter {
	return shared.Filter{
		Page:      r.Page,
		PageSize:  r.PageSize,
		Status:    r.Status,
		Search:    r.Search,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
	}.Normalize()
}
