package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// DefaultTimeout bounds an inference call when no timeout is given.
const DefaultTimeout = 60 * time.Second

// maxResponseBytes bounds how much of an inference response is read.
const maxResponseBytes = 4 << 20

// HTTPClient is the inference service client.
type HTTPClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a new inference client. An empty endpoint yields a
// client whose calls fail with ErrEndpointNotConfigured. A non-positive
// timeout falls back to DefaultTimeout.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Reply posts the request to the configured endpoint. It makes exactly one
// attempt.
func (c *HTTPClient) Reply(ctx context.Context, req *domain.UpstreamRequest) (*domain.UpstreamResponse, error) {
	if c.endpoint == "" {
		return nil, ErrEndpointNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return ParseReply(respBody)
}

// ParseReply decodes a success body of the form {"reply": string,
// "actions": [...]}. Absent or null actions become an empty sequence.
func ParseReply(body []byte) (*domain.UpstreamResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ProtocolError{Reason: "body is not valid JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &ProtocolError{Reason: "body is not a JSON object"}
	}

	reply := root.Get("reply")
	if reply.Type != gjson.String {
		return nil, &ProtocolError{Reason: "reply is missing or not a string"}
	}

	out := &domain.UpstreamResponse{
		Reply:   reply.String(),
		Actions: []json.RawMessage{},
	}

	actions := root.Get("actions")
	switch {
	case !actions.Exists() || actions.Type == gjson.Null:
	case actions.IsArray():
		actions.ForEach(func(_, action gjson.Result) bool {
			out.Actions = append(out.Actions, json.RawMessage(action.Raw))
			return true
		})
	default:
		return nil, &ProtocolError{Reason: "actions is not an array"}
	}

	return out, nil
}

// setHeaders sets common request headers.
func (c *HTTPClient) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
}

type requestIDKey struct{}

// WithRequestID attaches the inbound request ID so it is forwarded upstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID set by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
