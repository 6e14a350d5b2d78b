package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements the Provider interface for Google's Gemini models.
type GeminiProvider struct {
	Model  string // e.g. "gemini-2.5-flash"
	APIKey string // falls back to GEMINI_API_KEY
}

// Ensure interface compliance
var _ Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) client(ctx context.Context, options map[string]interface{}) (*genai.Client, error) {
	apiKey := optString(options, OptAPIKey, p.APIKey)
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w: set GEMINI_API_KEY", ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

func (p *GeminiProvider) config(systemPrompt string, options map[string]interface{}) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(optFloat(options, OptTemperature, 0.4))),
	}
	if n := optInt(options, OptMaxTokens, 0); n > 0 {
		config.MaxOutputTokens = int32(n)
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		}
	}
	return config
}

func (p *GeminiProvider) model(options map[string]interface{}) string {
	model := p.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return optString(options, OptModel, model)
}

// GenerateResponse sends a generateContent request to the Gemini API using the official GenAI SDK.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	client, err := p.client(ctx, options)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, p.model(options), genai.Text(prompt), p.config(systemPrompt, options))
	if err != nil {
		return "", geminiError(err)
	}
	return result.Text(), nil
}

// StreamResponse uses GenerateContentStream and forwards each response's text.
func (p *GeminiProvider) StreamResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (<-chan Chunk, error) {
	client, err := p.client(ctx, options)
	if err != nil {
		return nil, err
	}

	model := p.model(options)
	config := p.config(systemPrompt, options)
	out := make(chan Chunk)

	go func() {
		defer close(out)
		for resp, err := range client.Models.GenerateContentStream(ctx, model, genai.Text(prompt), config) {
			if err != nil {
				sendChunk(ctx, out, Chunk{Err: geminiError(err)})
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			if !sendChunk(ctx, out, Chunk{Text: text}) {
				return
			}
		}
	}()
	return out, nil
}

func (p *GeminiProvider) AdaptInstructions(raw string) string {
	return raw
}

// geminiError maps SDK API errors onto the shared status errors.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: "gemini", StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("gemini generation failed: %v: %w", err, ErrUnavailable)
}
