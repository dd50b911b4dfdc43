package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{CodeAuthRequired, http.StatusUnauthorized},
		{shared.CodeInvalidToken, http.StatusUnauthorized},
		{shared.CodeTokenExpired, http.StatusUnauthorized},
		{shared.CodeTokenRevoked, http.StatusUnauthorized},
		{shared.CodeInvalidCredentials, http.StatusUnauthorized},
		{shared.CodeUserInactive, http.StatusForbidden},
		{shared.CodeTenantInactive, http.StatusForbidden},
		{shared.CodeForbidden, http.StatusForbidden},
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeInvalidState, http.StatusUnprocessableEntity},
		{shared.CodeInvalidReference, http.StatusUnprocessableEntity},
		{shared.CodeIntegrationNotConfigured, http.StatusUnprocessableEntity},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeConflict, http.StatusConflict},
		{shared.CodeSyncInProgress, http.StatusConflict},
		{CodeRateLimited, http.StatusTooManyRequests},
		{shared.CodeSyncRejected, http.StatusBadGateway},
		{shared.CodeSyncRetryable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponseShape(t *testing.T) {
	resp := NewErrorResponse(shared.CodeTenantInactive, "tenant is not active", "req-1")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "tenant is not active", decoded["error"])
	assert.Equal(t, "TENANT_INACTIVE", decoded["code"])
	assert.Equal(t, "req-1", decoded["request_id"])
	assert.NotContains(t, decoded, "data")
	assert.NotContains(t, decoded, "details")
}

func TestValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("validation failed", "", []shared.FieldError{
		{Field: "email", Message: "email is required"},
	})

	assert.Equal(t, CodeValidation, resp.Code)
	assert.Empty(t, resp.RequestID)
	details, ok := resp.Details.([]shared.FieldError)
	require.True(t, ok)
	assert.Equal(t, "email", details[0].Field)
}

func TestNewPageResponse(t *testing.T) {
	filter := shared.Filter{Page: 2, PageSize: 2}
	page := shared.NewPaginated([]string{"c", "d"}, 5, filter)

	resp := NewPageResponse(page)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"c", "d"}, resp.Data)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestListRequestFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := ListRequest{}.Filter()
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 20, f.PageSize)
	})

	t.Run("carries query values", func(t *testing.T) {
		f := ListRequest{Page: 3, PageSize: 50, Status: "open", Search: "acme", SortBy: "name", SortOrder: "asc"}.Filter()
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 50, f.PageSize)
		assert.Equal(t, "open", f.Status)
		assert.Equal(t, "acme", f.Search)
		assert.Equal(t, "name", f.SortBy)
		assert.Equal(t, "asc", f.SortOrder)
	})
}
