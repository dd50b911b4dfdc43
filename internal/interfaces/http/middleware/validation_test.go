package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
)

type bindTarget struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"vendor_code" binding:"required,max=5"`
	Count int    `json:"count"`
}

func bindBody(t *testing.T, body string) error {
	t.Helper()
	SetupValidator()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	return c.ShouldBindJSON(&target)
}

func TestBindingError(t *testing.T) {
	t.Run("names fields by json tag", func(t *testing.T) {
		err := bindBody(t, `{"email":"nope","vendor_code":"TOOLONG"}`)
		require.Error(t, err)

		de := BindingError(err)
		assert.Equal(t, shared.CodeValidation, de.Code)
		require.Len(t, de.Details, 2)
		assert.Equal(t, "email", de.Details[0].Field)
		assert.Equal(t, "must be a valid email address", de.Details[0].Message)
		assert.Equal(t, "vendor_code", de.Details[1].Field)
		assert.Equal(t, "must be at most 5 characters", de.Details[1].Message)
	})

	t.Run("wrong json type", func(t *testing.T) {
		err := bindBody(t, `{"email":"a@b.co","vendor_code":"V1","count":"three"}`)
		require.Error(t, err)

		de := BindingError(err)
		require.Len(t, de.Details, 1)
		assert.Equal(t, "count", de.Details[0].Field)
	})

	t.Run("broken json", func(t *testing.T) {
		err := bindBody(t, `{"email":`)
		require.Error(t, err)

		de := BindingError(err)
		assert.Equal(t, shared.CodeValidation, de.Code)
		assert.Empty(t, de.Details)
	})
}
