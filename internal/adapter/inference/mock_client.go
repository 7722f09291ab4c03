package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// MockClient answers locally without contacting an inference service.
type MockClient struct{}

// NewMockClient creates a new mock inference client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reply returns a deterministic reply describing the request.
func (m *MockClient) Reply(ctx context.Context, req *domain.UpstreamRequest) (*domain.UpstreamResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &domain.UpstreamResponse{
		Reply:   m.generateMockReply(req),
		Actions: []json.RawMessage{},
	}, nil
}

// generateMockReply summarizes what the inference service would have seen.
func (m *MockClient) generateMockReply(req *domain.UpstreamRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[MOCK] Received your message: %q.", truncate(req.UserInput, 100))

	counts := req.DBData.Counts()
	fmt.Fprintf(&b, " Context: %d courses, %d tasks, %d enrolled, %d in cart.",
		counts[domain.DatasetCatalog],
		counts[domain.DatasetTasks],
		counts[domain.DatasetEnrollments],
		counts[domain.DatasetCartItems],
	)

	if rows := req.DBData[domain.DatasetCatalog]; len(rows) > 0 {
		if title, ok := rows[0]["title"].(string); ok && title != "" {
			fmt.Fprintf(&b, " Top rated: %s.", title)
		}
	}
	return b.String()
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
