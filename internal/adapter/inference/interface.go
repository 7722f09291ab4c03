// Package inference provides clients for the external inference service
// that answers assistant requests.
package inference

import (
	"context"
	"errors"
	"fmt"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// Client defines the interface for inference service calls.
type Client interface {
	// Reply sends one assistant request and returns the parsed reply.
	Reply(ctx context.Context, req *domain.UpstreamRequest) (*domain.UpstreamResponse, error)
}

// Ensure the implementations satisfy Client.
var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*MockClient)(nil)
)

// ErrEndpointNotConfigured is returned before any network attempt when no
// inference endpoint is configured.
var ErrEndpointNotConfigured = errors.New("inference endpoint is not configured")

// StatusError is returned when the inference service answers with a
// non-success status. Body holds the raw response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference service error [%d]: %s", e.StatusCode, e.Body)
}

// TransportError is returned when the request could not be completed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach inference service: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is returned when a success body does not have the expected
// shape.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "invalid inference response: " + e.Reason
}
