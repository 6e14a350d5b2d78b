package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// StreamResponse delivers the completion as text deltas in arrival order. The channel is
	// closed when the stream ends; a failure mid-stream arrives as a final Chunk with Err set.
	StreamResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (<-chan Chunk, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// Chunk is one streamed text delta.
type Chunk struct {
	Text string
	Err  error
}

var (
	ErrMissingAPIKey    = errors.New("llm api key not configured")
	ErrRateLimited      = errors.New("rate limit exceeded, try again shortly")
	ErrCreditsExhausted = errors.New("ai credits exhausted")
	ErrUnavailable      = errors.New("ai analysis unavailable")
)

// StatusError is a non-2xx response from a provider API.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

// Unwrap maps the status to one of the sentinel errors: 429 ErrRateLimited,
// 402 ErrCreditsExhausted, anything else ErrUnavailable.
func (e *StatusError) Unwrap() error {
	return errorForStatus(e.StatusCode)
}

func errorForStatus(code int) error {
	switch code {
	case 429:
		return ErrRateLimited
	case 402:
		return ErrCreditsExhausted
	default:
		return ErrUnavailable
	}
}

// Option keys understood by the providers.
const (
	OptModel       = "model"
	OptMaxTokens   = "max_tokens"
	OptTemperature = "temperature"
	OptAPIKey      = "api_key"
)

func optString(options map[string]interface{}, key, def string) string {
	if v, ok := options[key].(string); ok && v != "" {
		return v
	}
	return def
}

func optInt(options map[string]interface{}, key string, def int) int {
	switch v := options[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func optFloat(options map[string]interface{}, key string, def float64) float64 {
	switch v := options[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return def
}

// sendChunk delivers c unless ctx is done first.
func sendChunk(ctx context.Context, out chan<- Chunk, c Chunk) bool {
	select {
	case out <- c:
		return true
	case <-ctx.Done():
		return false
	}
}
