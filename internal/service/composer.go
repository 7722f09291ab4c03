package service

import (
	"bytes"
	"encoding/json"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// DefaultPromptType is used when neither the request nor the configuration
// names a prompt variant.
const DefaultPromptType = "improved"

// ComposeUpstreamRequest builds the inference payload. Datasets longer than
// their cap are truncated; missing datasets become empty sequences.
func ComposeUpstreamRequest(req domain.ChatRequest, agg domain.AggregatedContext, defaultPromptType string) *domain.UpstreamRequest {
	promptType := req.PromptType
	if promptType == "" {
		promptType = defaultPromptType
	}
	if promptType == "" {
		promptType = DefaultPromptType
	}

	dbData := domain.NewAggregatedContext()
	for _, name := range domain.DatasetNames {
		rows := agg[name]
		if limit := name.RowLimit(); len(rows) > limit {
			rows = rows[:limit]
		}
		dbData.Set(name, rows)
	}

	return &domain.UpstreamRequest{
		UserInput:  req.Message,
		UserEmail:  req.Email,
		UserName:   req.Username,
		Context:    passthroughContext(req.Context),
		PromptType: promptType,
		DBData:     dbData,
	}
}

// passthroughContext drops an absent or null context so it is omitted from
// the payload.
func passthroughContext(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}
