// Package connector holds the HTTP clients that talk to tenant-configured
// external systems (ERP, risk rating providers).
package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vendorhub/backend/internal/domain/integration"
)

// maxResponseSize is the maximum response body read from a remote system (1MB)
const maxResponseSize = 1 << 20

// maxErrorBody caps how much of a failed response ends up in sync logs
const maxErrorBody = 512

// remote is the shared JSON-over-HTTP transport of all connectors
type remote struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// call sends one request and decodes a 2xx JSON body into out (when out is non-nil).
// Every failure comes back classified as an *integration.RemoteError, except
// cancellation by the caller which is returned as is.
func (r *remote) call(ctx context.Context, method, path string, headers map[string]string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &integration.RemoteError{Message: "encode request: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return &integration.RemoteError{Message: "build request: " + err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		return integration.NewTransientError(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return integration.NewTransientError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return integration.ClassifyStatus(resp.StatusCode, errorBody(raw))
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// The remote accepted the call but answered with something unreadable.
		// Retrying a create here could duplicate it, so this is permanent.
		return &integration.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    "decode response: " + err.Error(),
			Err:        err,
		}
	}
	return nil
}

func errorBody(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	if s == "" {
		return "empty response body"
	}
	return s
}

// Options tunes the HTTP transport shared by all connectors
type Options struct {
	// Timeout bounds one remote call
	Timeout time.Duration
	// UserAgent identifies this service to remote systems
	UserAgent string
	// Transport overrides the default round tripper (tests, tracing)
	Transport http.RoundTripper
}

func (o Options) httpClient() *http.Client {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: o.Transport}
}
