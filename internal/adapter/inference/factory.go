package inference

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ModeMock selects the mock client.
const ModeMock = "MOCK"

// NewInferenceClient creates a client based on the assistant mode.
// If mode is MOCK, returns a MockClient; otherwise returns an HTTPClient.
func NewInferenceClient(mode, endpoint, apiKey string, timeout time.Duration) Client {
	if strings.EqualFold(mode, ModeMock) {
		log.Info().Msg("ASSISTANT_MODE=MOCK detected, using mock inference client")
		return NewMockClient()
	}

	return NewHTTPClient(endpoint, apiKey, timeout)
}
