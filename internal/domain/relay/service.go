package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/sms-relay/internal/domain/smstext"
	"github.com/yanqian/sms-relay/internal/infra/llm/openai"
	apperrors "github.com/yanqian/sms-relay/pkg/errors"
	"github.com/yanqian/sms-relay/pkg/metrics"
	"github.com/yanqian/sms-relay/pkg/util"
)

// ErrTooManyToolCalls is returned when the model keeps requesting tools past
// the round limit.
var ErrTooManyToolCalls = errors.New("model made too many tool calls")

// Service answers an inbound text by running the model and its tools.
type Service interface {
	Answer(ctx context.Context, text string) (string, error)
}

// ModelClient is the subset of the Responses API the loop needs.
type ModelClient interface {
	CreateResponse(ctx context.Context, req openai.ResponseRequest) (openai.Response, error)
	GetResponse(ctx context.Context, id string) (openai.Response, error)
}

type service struct {
	cfg         Config
	client      ModelClient
	tools       map[string]Tool
	definitions []openai.Tool
	logger      *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewService builds the conversation loop with the given function tools.
func NewService(cfg Config, client ModelClient, logger *slog.Logger, tools ...Tool) Service {
	cfg = cfg.withDefaults()
	table := make(map[string]Tool, len(tools))
	definitions := make([]openai.Tool, 0, len(tools)+2)
	for _, tool := range tools {
		table[tool.Definition.Name] = tool
		definitions = append(definitions, tool.Definition)
	}
	definitions = append(definitions, providerTools(cfg)...)
	return &service{
		cfg:         cfg,
		client:      client,
		tools:       table,
		definitions: definitions,
		logger:      logger.With("component", "relay.service"),
		sleep:       util.Sleep,
	}
}

func (s *service) Answer(ctx context.Context, text string) (string, error) {
	input := []openai.InputItem{openai.UserMessage(text)}
	var previousID string
	var usage metrics.TokenUsage

	for round := 1; round <= s.cfg.MaxRounds; round++ {
		resp, err := s.complete(ctx, s.buildRequest(previousID, input))
		if err != nil {
			return "", err
		}
		usage = usage.Add(usageOf(resp))

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			s.logger.Info("model answered", "rounds", round, "response_id", resp.ID,
				"input_tokens", usage.InputTokens, "output_tokens", usage.OutputTokens,
				"reasoning_tokens", usage.ReasoningTokens)
			return smstext.Normalize(resp.OutputText()), nil
		}

		s.logger.Info("dispatching tool calls", "round", round, "response_id", resp.ID, "calls", len(calls))
		input, err = s.dispatch(ctx, calls)
		if err != nil {
			return "", err
		}
		previousID = resp.ID
	}

	return "", apperrors.Wrap(apperrors.CodeToolLimit,
		fmt.Sprintf("no answer after %d rounds", s.cfg.MaxRounds), ErrTooManyToolCalls)
}

func (s *service) buildRequest(previousID string, input []openai.InputItem) openai.ResponseRequest {
	req := openai.ResponseRequest{
		Model:              s.cfg.Model,
		PreviousResponseID: previousID,
		Input:              input,
		Tools:              s.definitions,
		Background:         s.cfg.Background,
		Store:              true,
	}
	if s.cfg.PromptID != "" {
		req.Prompt = &openai.Prompt{ID: s.cfg.PromptID, Version: s.cfg.PromptVersion}
	}
	if s.cfg.ReasoningEffort != "" {
		req.Reasoning = &openai.Reasoning{Effort: s.cfg.ReasoningEffort}
	}
	return req
}

// complete creates a response and polls it until it reaches a terminal status.
func (s *service) complete(ctx context.Context, req openai.ResponseRequest) (openai.Response, error) {
	resp, err := s.client.CreateResponse(ctx, req)
	if err != nil {
		return openai.Response{}, apperrors.Wrap(apperrors.CodeLLM, "create model response failed", err)
	}

	backoff := retry.WithCappedDuration(s.cfg.PollMaxDelay, retry.NewExponential(s.cfg.PollBaseDelay))
	for resp.Pending() {
		delay, _ := backoff.Next()
		s.logger.Debug("waiting for model response", "response_id", resp.ID, "status", resp.Status, "delay", delay)
		if err := s.sleep(ctx, delay); err != nil {
			return openai.Response{}, apperrors.Wrap(apperrors.CodeLLM, "polling model response interrupted", err)
		}
		resp, err = s.client.GetResponse(ctx, resp.ID)
		if err != nil {
			return openai.Response{}, apperrors.Wrap(apperrors.CodeLLM, "poll model response failed", err)
		}
	}

	if resp.Status != openai.StatusCompleted {
		return openai.Response{}, apperrors.Wrap(apperrors.CodeLLM,
			fmt.Sprintf("model response %s", resp.Status), errors.New(resp.FailureReason()))
	}
	return resp, nil
}

// dispatch runs the calls of one round concurrently and returns their outputs
// in the order the model issued them.
func (s *service) dispatch(ctx context.Context, calls []openai.OutputItem) ([]openai.InputItem, error) {
	outputs := make([]string, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.ToolConcurrency)
	for i, call := range calls {
		g.Go(func() error {
			outputs[i] = s.runTool(gctx, call)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLLM, "tool dispatch interrupted", err)
	}

	items := make([]openai.InputItem, len(calls))
	for i, call := range calls {
		items[i] = openai.FunctionCallOutput(call.CallID, outputs[i])
	}
	return items, nil
}

func (s *service) runTool(ctx context.Context, call openai.OutputItem) string {
	tool, ok := s.tools[call.Name]
	if !ok {
		s.logger.Warn("model called unknown tool", "tool", call.Name, "call_id", call.CallID)
		return fmt.Sprintf("Unknown tool %q", call.Name)
	}
	start := time.Now()
	out := tool.Run(ctx, call.Arguments)
	s.logger.Info("tool call finished", "tool", call.Name, "call_id", call.CallID, "duration", time.Since(start))
	return out
}

func usageOf(resp openai.Response) metrics.TokenUsage {
	if resp.Usage == nil {
		return metrics.TokenUsage{}
	}
	return metrics.TokenUsage{
		InputTokens:     resp.Usage.InputTokens,
		OutputTokens:    resp.Usage.OutputTokens,
		ReasoningTokens: resp.Usage.OutputTokensDetails.ReasoningTokens,
		TotalTokens:     resp.Usage.TotalTokens,
	}
}
