package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEventStream(t *testing.T) {
	stream := strings.Join([]string{
		": keep-alive",
		`data: {"choices":[{"delta":{"content":"Walk "}}]}`,
		"",
		`data: {"choices":[{"delta":{"content":"away."}}]}` + "\r",
		`data: {"choices":[{"delta":{"conte`,
		`data: {"choices":[{"delta":{}}]}`,
		"data: [DONE]",
		`data: {"choices":[{"delta":{"content":"ignored"}}]}`,
	}, "\n")

	var parts []string
	err := ReadEventStream(strings.NewReader(stream), func(text string) bool {
		parts = append(parts, text)
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Walk ", "away."}, parts)
}

func TestReadEventStream_StopEarly(t *testing.T) {
	stream := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\ndata: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n"
	var parts []string
	err := ReadEventStream(strings.NewReader(stream), func(text string) bool {
		parts = append(parts, text)
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, parts)
}

func newTestProvider(url string) *ChatCompletionsProvider {
	return &ChatCompletionsProvider{Name: "test", URL: url, APIKey: "secret", Model: "m"}
}

func TestChatCompletions_Generate(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Proceed."}}]}`)
	}))
	defer srv.Close()

	out, err := newTestProvider(srv.URL).GenerateResponse(context.Background(), "user", "system", map[string]interface{}{
		OptMaxTokens: 2000,
	})

	require.NoError(t, err)
	assert.Equal(t, "Proceed.", out)
	assert.False(t, got.Stream)
	assert.Equal(t, 2000, got.MaxTokens)
	assert.Equal(t, "m", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
}

func TestChatCompletions_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Negotiate ", "the ", "price."} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", part)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	ch, err := newTestProvider(srv.URL).StreamResponse(context.Background(), "u", "s", nil)
	require.NoError(t, err)

	var b strings.Builder
	for c := range ch {
		require.NoError(t, c.Err)
		b.WriteString(c.Text)
	}
	assert.Equal(t, "Negotiate the price.", b.String())
}

func TestChatCompletions_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusPaymentRequired, ErrCreditsExhausted},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusUnauthorized, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"error":"nope"}`)
			}))
			defer srv.Close()

			_, err := newTestProvider(srv.URL).StreamResponse(context.Background(), "u", "s", nil)
			assert.ErrorIs(t, err, tt.want)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Contains(t, se.Body, "nope")
		})
	}
}

func TestChatCompletions_MissingKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	p := NewDeepSeekProvider("")
	_, err := p.GenerateResponse(context.Background(), "u", "s", nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGemini_MissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	p := &GeminiProvider{}
	_, err := p.StreamResponse(context.Background(), "u", "s", nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewGatewayProvider_Defaults(t *testing.T) {
	t.Setenv("AI_GATEWAY_URL", "")
	t.Setenv("AI_GATEWAY_MODEL", "")
	p := NewGatewayProvider("", "")
	assert.Equal(t, "gateway", p.Name)
	assert.Contains(t, p.URL, "/chat/completions")
	assert.NotEmpty(t, p.Model)

	p = NewGatewayProvider("http://localhost:9/v1/chat/completions", "custom")
	assert.Equal(t, "custom", p.Model)
}
