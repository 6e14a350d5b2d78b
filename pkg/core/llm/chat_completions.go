package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ChatCompletionsProvider talks to any OpenAI-compatible /chat/completions endpoint
// (OpenAI, DeepSeek, or an AI gateway).
type ChatCompletionsProvider struct {
	Name      string
	URL       string
	APIKey    string
	APIKeyEnv string
	Model     string
	Client    *http.Client
}

var _ Provider = (*ChatCompletionsProvider)(nil)

// NewOpenAIProvider
func NewOpenAIProvider(model string) *ChatCompletionsProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &ChatCompletionsProvider{
		Name:      "openai",
		URL:       "https://api.openai.com/v1/chat/completions",
		APIKeyEnv: "OPENAI_API_KEY",
		Model:     model,
	}
}

// NewDeepSeekProvider
func NewDeepSeekProvider(model string) *ChatCompletionsProvider {
	if model == "" {
		model = "deepseek-chat"
	}
	return &ChatCompletionsProvider{
		Name:      "deepseek",
		URL:       "https://api.deepseek.com/chat/completions",
		APIKeyEnv: "DEEPSEEK_API_KEY",
		Model:     model,
	}
}

// NewGatewayProvider targets a hosted model gateway. url and model fall back to
// AI_GATEWAY_URL / AI_GATEWAY_MODEL.
func NewGatewayProvider(url, model string) *ChatCompletionsProvider {
	if url == "" {
		url = os.Getenv("AI_GATEWAY_URL")
	}
	if url == "" {
		url = "https://ai.gateway.lovable.dev/v1/chat/completions"
	}
	if model == "" {
		model = os.Getenv("AI_GATEWAY_MODEL")
	}
	if model == "" {
		model = "google/gemini-3-flash-preview"
	}
	return &ChatCompletionsProvider{
		Name:      "gateway",
		URL:       url,
		APIKeyEnv: "AI_GATEWAY_API_KEY",
		Model:     model,
	}
}

// ChatRequest is the request body for /chat/completions.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type Message struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

// ChatResponse is a non-streamed completion.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatStreamEvent is one `data:` payload of a streamed completion.
type ChatStreamEvent struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (p *ChatCompletionsProvider) do(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}, stream bool) (*http.Response, error) {
	apiKey := optString(options, OptAPIKey, p.APIKey)
	if apiKey == "" && p.APIKeyEnv != "" {
		apiKey = os.Getenv(p.APIKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w: set %s", p.Name, ErrMissingAPIKey, p.APIKeyEnv)
	}

	reqBody := ChatRequest{
		Messages: []Message{
			{Content: systemPrompt, Role: "system"},
			{Content: prompt, Role: "user"},
		},
		Model:     optString(options, OptModel, p.Model),
		MaxTokens: optInt(options, OptMaxTokens, 0),
		Stream:    stream,
	}
	if _, ok := options[OptTemperature]; ok {
		t := optFloat(options, OptTemperature, 0)
		reqBody.Temperature = &t
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", p.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", p.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	} else {
		req.Header.Set("Accept", "application/json")
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: api call: %v: %w", p.Name, err, ErrUnavailable)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &StatusError{Provider: p.Name, StatusCode: res.StatusCode, Body: string(body)}
	}
	return res, nil
}

func (p *ChatCompletionsProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	res, err := p.do(ctx, prompt, systemPrompt, options, false)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", p.Name, err)
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return response.Choices[0].Message.Content, nil
}

func (p *ChatCompletionsProvider) StreamResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (<-chan Chunk, error) {
	res, err := p.do(ctx, prompt, systemPrompt, options, true)
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		defer res.Body.Close()

		err := ReadEventStream(res.Body, func(text string) bool {
			return sendChunk(ctx, out, Chunk{Text: text})
		})
		if err != nil && ctx.Err() == nil {
			sendChunk(ctx, out, Chunk{Err: fmt.Errorf("%s: read stream: %w", p.Name, err)})
		}
	}()
	return out, nil
}

func (p *ChatCompletionsProvider) AdaptInstructions(raw string) string {
	return raw
}

// ReadEventStream parses an OpenAI-style server-sent event stream and calls emit with each
// non-empty delta. Lines other than `data:` are ignored, `[DONE]` ends the stream and data
// that is not valid JSON (a partial line) is skipped. emit returning false stops reading.
func ReadEventStream(r io.Reader, emit func(text string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return nil
		}

		var event ChatStreamEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue
		}
		if len(event.Choices) == 0 || event.Choices[0].Delta.Content == "" {
			continue
		}
		if !emit(event.Choices[0].Delta.Content) {
			return nil
		}
	}
	return scanner.Err()
}
