package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// RequestID tags the request with an id and echoes it in X-Request-ID. A
// client supplied id is kept when it is short and has no whitespace.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !usableRequestID(id) {
			id = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func usableRequestID(id string) bool {
	return id != "" && len(id) <= maxRequestIDLength && !strings.ContainsAny(id, " \t\r\n")
}

// SecurityConfig controls Strict-Transport-Security
type SecurityConfig struct {
	HSTSEnabled bool
	HSTSMaxAge  int // seconds
}

// SecureWithConfig sets hardening headers on every response. Responses are
// JSON only, so the content security policy denies everything.
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	headers := [][2]string{
		{"X-Frame-Options", "DENY"},
		{"X-Content-Type-Options", "nosniff"},
		{"Referrer-Policy", "no-referrer"},
		{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
		{"Cache-Control", "no-store"},
	}
	if cfg.HSTSEnabled {
		headers = append(headers, [2]string{"Strict-Transport-Security",
			"max-age=" + strconv.Itoa(cfg.HSTSMaxAge) + "; includeSubDomains"})
	}

	return func(c *gin.Context) {
		for _, h := range headers {
			c.Header(h[0], h[1])
		}
		c.Next()
	}
}
