// Package narrative asks an LLM for the short verdict and the memo analysis that accompany a
// calculator result. Numeric results never depend on it: every failure here is reported to the
// caller and the result stands on its own.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"alight_calculator/pkg/core/agent"
	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/llm"
	"alight_calculator/pkg/core/prompt"
	"alight_calculator/pkg/core/utils"
	"alight_calculator/pkg/logger"
)

// Collaborator failures, shared with the provider layer so errors.Is works on either.
var (
	ErrRateLimited      = llm.ErrRateLimited
	ErrCreditsExhausted = llm.ErrCreditsExhausted
	ErrUnavailable      = llm.ErrUnavailable
)

// Executor is the slice of agent.Manager the service needs.
type Executor interface {
	ExecutePrompt(ctx context.Context, agentType, prompt, systemPrompt string, options map[string]interface{}) (string, error)
	StreamPrompt(ctx context.Context, agentType, prompt, systemPrompt string, options map[string]interface{}) (<-chan llm.Chunk, error)
}

type Service struct {
	agents  Executor
	prompts *prompt.Registry
	log     zerolog.Logger
}

// NewService uses prompt.Get() when prompts is nil. Built-in prompts fill in whatever the
// registry does not already hold.
func NewService(agents Executor, prompts *prompt.Registry, log zerolog.Logger) (*Service, error) {
	if prompts == nil {
		prompts = prompt.Get()
	}
	if err := RegisterDefaults(prompts); err != nil {
		return nil, fmt.Errorf("register narrative prompts: %w", err)
	}
	return &Service{
		agents:  agents,
		prompts: prompts,
		log:     logger.Component(log, "narrative"),
	}, nil
}

// Request is a rendered prompt ready to send.
type Request struct {
	PromptID  string
	System    string
	User      string
	MaxTokens int
}

// Build renders the verdict or memo prompt for p. An unknown calculator type uses the Deal ROI
// prompts.
func (s *Service) Build(p calculator.Payload, memo bool) (Request, error) {
	kind, err := calculator.ParseKind(p.CalculatorType)
	if err != nil {
		kind = calculator.DealROI
	}

	id := prompt.NarrativeID(Slug(kind))
	if memo {
		id = prompt.MemoID(Slug(kind))
	}
	inputs, results := p.Inputs, p.Results
	if inputs == nil {
		inputs = map[string]any{}
	}
	if results == nil {
		results = map[string]any{}
	}
	ctx := prompt.NewContext().
		Set("Calculator", p.CalculatorType).
		Set("Market", p.Country).
		Set("Industry", p.Industry).
		Set("Inputs", inputs).
		Set("Results", results)

	pt, user, err := s.prompts.Render(id, ctx)
	if err != nil {
		return Request{}, err
	}
	return Request{PromptID: id, System: pt.SystemPrompt, User: user, MaxTokens: pt.MaxTokens}, nil
}

func options(maxTokens int) map[string]interface{} {
	if maxTokens <= 0 {
		return nil
	}
	return map[string]interface{}{llm.OptMaxTokens: maxTokens}
}

// Stream starts the short verdict for p and returns its text deltas.
func (s *Service) Stream(ctx context.Context, p calculator.Payload) (<-chan llm.Chunk, error) {
	req, err := s.Build(p, false)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("prompt", req.PromptID).Str("market", p.Country).Str("industry", p.Industry).Msg("streaming verdict")

	ch, err := s.agents.StreamPrompt(ctx, agent.AgentNarrative, req.User, req.System, options(req.MaxTokens))
	if err != nil {
		return nil, s.fail(req.PromptID, err)
	}
	return ch, nil
}

// Memo returns the detailed analysis for p as plain text with markdown removed.
func (s *Service) Memo(ctx context.Context, p calculator.Payload) (string, error) {
	req, err := s.Build(p, true)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("prompt", req.PromptID).Msg("generating memo analysis")

	text, err := s.agents.ExecutePrompt(ctx, agent.AgentMemo, req.User, req.System, options(req.MaxTokens))
	if err != nil {
		return "", s.fail(req.PromptID, err)
	}
	return utils.PlainText(text), nil
}

// Analyze dispatches on p.DetailedMemo: the memo is returned whole, the verdict is accumulated
// from its stream.
func (s *Service) Analyze(ctx context.Context, p calculator.Payload) (string, error) {
	if p.DetailedMemo {
		return s.Memo(ctx, p)
	}
	ch, err := s.Stream(ctx, p)
	if err != nil {
		return "", err
	}
	return Accumulate(ch)
}

// fail maps provider errors onto the collaborator sentinels. Cancellation passes through.
func (s *Service) fail(promptID string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.log.Warn().Err(err).Str("prompt", promptID).Msg("narrative request failed")
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrCreditsExhausted) || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Accumulate drains ch into one string. It returns what arrived before the first error along
// with that error.
func Accumulate(ch <-chan llm.Chunk) (string, error) {
	var b strings.Builder
	for c := range ch {
		if c.Err != nil {
			return b.String(), c.Err
		}
		b.WriteString(c.Text)
	}
	return b.String(), nil
}
