package logger

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog writes one entry per request once the handler chain returns.
// It also puts a request-scoped logger in the request context for L and
// FromContext.
func AccessLog(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		req := c.Request

		ctx, scoped := WithRequestID(req.Context(), base, c.GetString("request_id"))
		scoped = scoped.With(zap.String("method", req.Method), zap.String("path", req.URL.Path))
		c.Request = req.WithContext(WithContext(ctx, scoped))

		c.Next()

		status := c.Writer.Status()
		if ce := scoped.Check(levelForStatus(status), "HTTP Request"); ce != nil {
			ce.Write(accessFields(c, status, time.Since(began))...)
		}
	}
}

func levelForStatus(status int) zapcore.Level {
	if status >= http.StatusInternalServerError {
		return zapcore.ErrorLevel
	}
	if status >= http.StatusBadRequest {
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func accessFields(c *gin.Context, status int, latency time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("body_size", c.Writer.Size()),
	}
	if q := c.Request.URL.RawQuery; q != "" {
		fields = append(fields, zap.String("query", q))
	}
	// the tenant resolver replaces c.Request, so identity is read after Next
	ctx := c.Request.Context()
	if tid := GetTenantID(ctx); tid != "" {
		fields = append(fields, zap.String("tenant_id", tid), zap.String("user_id", GetUserID(ctx)))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
	}
	return fields
}

// Recovery turns a handler panic into a logged error and a 500 INTERNAL_ERROR
// envelope. Gin's own panic output is discarded.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		requestID := c.GetString("request_id")
		base.Error("Panic recovered",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("error", recovered),
			zap.Stack("stacktrace"),
		)

		body := gin.H{"success": false, "error": "internal server error", "code": "INTERNAL_ERROR"}
		if requestID != "" {
			body["request_id"] = requestID
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
