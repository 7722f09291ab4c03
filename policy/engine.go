package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// Input is the document the assistant policy is evaluated against.
type Input struct {
	MessageLength    int    `json:"message_length"`
	MaxMessageLength int    `json:"max_message_length"`
	PromptType       string `json:"prompt_type"`
	Identity         string `json:"identity"` // "anonymous" or "known"
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("decision := data.assistant_policy.decision; reason := data.assistant_policy.reason"),
		rego.Module("assistant_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// NewEngineFromFile loads the policy at path, or DefaultPolicy when path is
// empty.
func NewEngineFromFile(ctx context.Context, path string) (*Engine, error) {
	if path == "" {
		return NewEngine(ctx, DefaultPolicy)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return NewEngine(ctx, string(content))
}

// Evaluate checks the assistant policy.
// Returns: decision (allow, block), reason (optional), error
func (e *Engine) Evaluate(ctx context.Context, input Input) (domain.PolicyDecision, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 {
		// The policy defines its own default; an empty result means the
		// document is undefined, which we treat as allow.
		return domain.PolicyDecisionAllow, "default", nil
	}

	decision, _ := results[0].Bindings["decision"].(string)
	reason, _ := results[0].Bindings["reason"].(string)

	switch domain.PolicyDecision(decision) {
	case domain.PolicyDecisionAllow, domain.PolicyDecisionBlock:
		return domain.PolicyDecision(decision), reason, nil
	}
	return "", "", fmt.Errorf("unexpected policy decision %q", decision)
}

// DefaultPolicy is the default policy content. It allows every request
// unless a maximum message length is configured and exceeded.
const DefaultPolicy = `
package assistant_policy

default decision := "allow"

default reason := ""

too_long if {
	input.max_message_length > 0
	input.message_length > input.max_message_length
}

decision := "block" if too_long

reason := "message exceeds maximum length" if too_long
`
