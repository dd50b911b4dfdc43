package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/audit"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
)

// AuditRecorder persists audit entries on a best-effort basis
type AuditRecorder interface {
	Record(ctx context.Context, in audit.EntryInput)
}

// Auditor builds the audit decorator placed on privileged and auth routes
type Auditor struct {
	recorder AuditRecorder
}

// NewAuditor creates a new Auditor
func NewAuditor(recorder AuditRecorder) *Auditor {
	return &Auditor{recorder: recorder}
}

// Audit records exactly one entry for every request that reaches it, whatever
// the outcome. It must wrap the authorization gate so that denials are recorded.
// The response is buffered until the entry has been written.
func (a *Auditor) Audit(module, action, resourceType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail := map[string]any{}
		if q := c.Request.URL.Query(); len(q) > 0 {
			detail["query"] = queryDetail(q)
		}

		body, readErr := readBody(c)
		switch {
		case len(body) == 0:
		case json.Valid(body):
			var parsed any
			if err := json.Unmarshal(body, &parsed); err == nil {
				detail["body"] = parsed
			}
		default:
			detail["body_size"] = len(body)
		}

		orig := c.Writer
		buf := &bufferedWriter{ResponseWriter: orig}
		c.Writer = buf

		if readErr != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(readErr, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
					dto.CodeValidation, "request body is too large", GetRequestID(c)))
			} else {
				abortWithError(c, dto.CodeValidation, "request body could not be read")
			}
		} else {
			c.Next()
		}

		c.Writer = orig
		a.recorder.Record(c.Request.Context(), a.entryInput(c, module, action, resourceType, detail, buf))
		buf.flushTo(orig)
	}
}

func (a *Auditor) entryInput(c *gin.Context, module, action, resourceType string, detail map[string]any, buf *bufferedWriter) audit.EntryInput {
	if extra, ok := c.Get(auditDetailKey); ok {
		if m, ok := extra.(map[string]any); ok {
			for k, v := range m {
				detail[k] = v
			}
		}
	}

	in := audit.EntryInput{
		Module:       module,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   c.GetString(auditResourceIDKey),
		Detail:       detail,
		StatusCode:   buf.Status(),
		ErrorCode:    envelopeCode(buf.body.Bytes()),
		RequestID:    GetRequestID(c),
		IP:           c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	}
	if in.ResourceID == "" {
		in.ResourceID = c.Param("id")
	}

	if p, ok := GetPrincipal(c); ok {
		in.TenantID = &p.TenantID
		in.ActorID = &p.UserID
		return in
	}
	if v, ok := c.Get(auditTenantKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			in.TenantID = &id
		}
	}
	if v, ok := c.Get(auditActorKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			in.ActorID = &id
		}
	}
	return in
}

// readBody reads the request body and puts an identical reader back for the handler
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	return body, err
}

func queryDetail(q map[string][]string) map[string]any {
	out := make(map[string]any, len(q))
	for k, vs := range q {
		if len(vs) == 1 {
			out[k] = vs[0]
			continue
		}
		list := make([]any, len(vs))
		for i, v := range vs {
			list[i] = v
		}
		out[k] = list
	}
	return out
}

// envelopeCode extracts the rejection code from a buffered response body
func envelopeCode(body []byte) string {
	var env struct {
		Code string `json:"code"`
	}
	if len(body) == 0 || json.Unmarshal(body, &env) != nil {
		return ""
	}
	return env.Code
}

// bufferedWriter holds the status and body of the response until flushTo
type bufferedWriter struct {
	gin.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.status != 0 || w.body.Len() > 0
}

func (w *bufferedWriter) Flush() {}

func (w *bufferedWriter) flushTo(dst gin.ResponseWriter) {
	dst.WriteHeader(w.Status())
	if w.body.Len() == 0 {
		dst.WriteHeaderNow()
		return
	}
	_, _ = dst.Write(w.body.Bytes())
}
