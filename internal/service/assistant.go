package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rahhal10/Final-Backend/internal/adapter/inference"
	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/policy"
)

// Messages returned to callers for each failure kind.
const (
	MsgMessageRequired   = "Message is required"
	MsgPolicyBlocked     = "Request blocked by policy"
	MsgServerError       = "Server error"
	MsgInferenceURLUnset = "INFERENCE_URL is not set"
	MsgInferenceError    = "Inference service error"
	MsgInferenceInvalid  = "Invalid inference service response"
)

// Chat runs the assistant pipeline: validate, admit, fetch datasets,
// compose the upstream payload, call the inference service. Every failure
// is returned as a *domain.GatewayError.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	start := time.Now()
	identity := domain.NewIdentity(req.Email, req.Username)

	var agg domain.AggregatedContext
	resp, err := s.chat(ctx, req, identity, &agg)

	event := log.Info()
	if err != nil {
		event = log.Warn().Err(err)
		var gwErr *domain.GatewayError
		if errors.As(err, &gwErr) {
			event = event.Str("error_kind", string(gwErr.Kind))
		}
	}
	event = event.
		Str("request_id", inference.RequestIDFromContext(ctx)).
		Str("identity", identityLabel(identity)).
		Dur("latency", time.Since(start))
	if agg != nil {
		event = event.Dict("datasets", datasetCounts(agg))
	}
	event.Msg("assistant request")

	return resp, err
}

func (s *Service) chat(ctx context.Context, req domain.ChatRequest, identity domain.Identity, agg *domain.AggregatedContext) (*domain.ChatResponse, error) {
	if req.Message == "" {
		return nil, &domain.GatewayError{Kind: domain.ErrorKindInvalidRequest, Message: MsgMessageRequired}
	}

	if err := s.admit(ctx, req, identity); err != nil {
		return nil, err
	}

	fetched, err := s.fetcher.Fetch(ctx, identity)
	if err != nil {
		return nil, domain.NewGatewayError(domain.ErrorKindUpstreamDependency, MsgServerError, err)
	}
	*agg = fetched

	upstreamReq := ComposeUpstreamRequest(req, fetched, s.config.DefaultPromptType)

	reply, err := s.inferenceClient.Reply(ctx, upstreamReq)
	if err != nil {
		return nil, classifyInferenceError(err)
	}

	return &domain.ChatResponse{Reply: reply.Reply, Actions: reply.Actions}, nil
}

// admit evaluates the admission policy. A nil engine admits everything.
func (s *Service) admit(ctx context.Context, req domain.ChatRequest, identity domain.Identity) error {
	if s.policyEngine == nil {
		return nil
	}

	promptType := req.PromptType
	if promptType == "" {
		promptType = s.config.DefaultPromptType
	}
	decision, reason, err := s.policyEngine.Evaluate(ctx, policy.Input{
		MessageLength:    utf8.RuneCountInString(req.Message),
		MaxMessageLength: s.config.MaxMessageLength,
		PromptType:       promptType,
		Identity:         identityLabel(identity),
	})
	if err != nil {
		return domain.NewGatewayError(domain.ErrorKindInternal, MsgServerError, fmt.Errorf("policy evaluation failed: %w", err))
	}
	if decision == domain.PolicyDecisionBlock {
		return &domain.GatewayError{Kind: domain.ErrorKindPolicyDenied, Message: MsgPolicyBlocked, Detail: reason}
	}
	return nil
}

func classifyInferenceError(err error) *domain.GatewayError {
	var (
		statusErr    *inference.StatusError
		transportErr *inference.TransportError
		protocolErr  *inference.ProtocolError
	)
	switch {
	case errors.Is(err, inference.ErrEndpointNotConfigured):
		return &domain.GatewayError{Kind: domain.ErrorKindConfiguration, Message: MsgInferenceURLUnset, Err: err}
	case errors.As(err, &statusErr):
		return &domain.GatewayError{Kind: domain.ErrorKindUpstreamService, Message: MsgInferenceError, Detail: statusErr.Body, Err: err}
	case errors.As(err, &transportErr):
		return domain.NewGatewayError(domain.ErrorKindUpstreamService, MsgInferenceError, transportErr.Err)
	case errors.As(err, &protocolErr):
		return &domain.GatewayError{Kind: domain.ErrorKindUpstreamProtocol, Message: MsgInferenceInvalid, Detail: protocolErr.Reason, Err: err}
	}
	return domain.NewGatewayError(domain.ErrorKindInternal, MsgServerError, err)
}

func identityLabel(identity domain.Identity) string {
	switch identity.(type) {
	case domain.KnownIdentity:
		return "known"
	default:
		return "anonymous"
	}
}

func datasetCounts(agg domain.AggregatedContext) *zerolog.Event {
	dict := zerolog.Dict()
	for _, name := range domain.DatasetNames {
		dict = dict.Int(string(name), len(agg[name]))
	}
	return dict
}
