package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store answers
type Pinger interface {
	Ping() error
}

// SystemHandler serves operational endpoints
type SystemHandler struct {
	db  Pinger
	now func() time.Time
}

// NewSystemHandler creates a system handler checking db
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db, now: time.Now}
}

// Health handles GET /health. It answers 503 when the database is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	ts := h.now().UTC().Format(time.RFC3339)
	if err := h.db.Ping(); err != nil {
		logger.L(c.Request.Context()).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"time":     ts,
			"database": "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     ts,
		"database": "ok",
	})
}
