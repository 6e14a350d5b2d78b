package narrative

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alight_calculator/pkg/core/agent"
	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/llm"
	"alight_calculator/pkg/core/prompt"
)

type fakeExecutor struct {
	agentType string
	system    string
	user      string
	options   map[string]interface{}

	memo   string
	chunks []string
	block  bool
	err    error
}

func (f *fakeExecutor) record(agentType, user, system string, options map[string]interface{}) {
	f.agentType, f.user, f.system, f.options = agentType, user, system, options
}

func (f *fakeExecutor) ExecutePrompt(ctx context.Context, agentType, user, system string, options map[string]interface{}) (string, error) {
	f.record(agentType, user, system, options)
	return f.memo, f.err
}

func (f *fakeExecutor) StreamPrompt(ctx context.Context, agentType, user, system string, options map[string]interface{}) (<-chan llm.Chunk, error) {
	f.record(agentType, user, system, options)
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan llm.Chunk)
	chunks, block := f.chunks, f.block
	go func() {
		defer close(ch)
		for _, c := range chunks {
			select {
			case ch <- llm.Chunk{Text: c}:
			case <-ctx.Done():
				return
			}
		}
		if block {
			<-ctx.Done()
		}
	}()
	return ch, nil
}

func newService(t *testing.T, exec Executor) *Service {
	t.Helper()
	svc, err := NewService(exec, prompt.NewRegistry(), zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func dealPayload() calculator.Payload {
	return calculator.Payload{
		CalculatorType: "Deal ROI",
		Inputs:         map[string]any{"purchasePrice": 5000000.0, "exitYears": 5},
		Results:        map[string]any{"irr": "16.13"},
		Industry:       "real-estate",
		Country:        "US",
	}
}

func TestBuild_Verdict(t *testing.T) {
	svc := newService(t, &fakeExecutor{})

	req, err := svc.Build(dealPayload(), false)
	require.NoError(t, err)
	assert.Equal(t, "narrative.deal_roi", req.PromptID)
	assert.Equal(t, VerdictMaxTokens, req.MaxTokens)
	assert.Contains(t, req.System, "DEAL ROI / ACQUISITION")
	assert.Contains(t, req.System, "MAXIMUM 50 words")
	assert.Contains(t, req.User, "Calculator: Deal ROI\nMarket: US\nIndustry: real-estate")
	assert.Contains(t, req.User, `Inputs: {"exitYears":5,"purchasePrice":5000000}`)
	assert.Contains(t, req.User, `Results: {"irr":"16.13"}`)
}

func TestBuild_UnknownTypeUsesDealPrompts(t *testing.T) {
	svc := newService(t, &fakeExecutor{})

	p := dealPayload()
	p.CalculatorType = "Mortgage"
	req, err := svc.Build(p, true)
	require.NoError(t, err)
	assert.Equal(t, "memo.deal_roi", req.PromptID)
	assert.Equal(t, MemoMaxTokens, req.MaxTokens)
	assert.Contains(t, req.User, "Calculator: Mortgage")
}

func TestBuild_EveryCalculatorHasPrompts(t *testing.T) {
	svc := newService(t, &fakeExecutor{})
	for _, k := range calculator.Kinds() {
		p := calculator.Payload{CalculatorType: k.DisplayName()}
		v, err := svc.Build(p, false)
		require.NoError(t, err, k)
		m, err := svc.Build(p, true)
		require.NoError(t, err, k)
		assert.NotEqual(t, v.System, m.System)
		assert.Contains(t, v.User, "Inputs: {}")
	}
}

func TestNewService_KeepsOverrides(t *testing.T) {
	reg := prompt.NewRegistry()
	require.NoError(t, reg.Register(&prompt.PromptTemplate{
		ID:             prompt.MemoID("payback"),
		SystemPrompt:   "custom",
		UserPromptTmpl: "{{.Calculator}}",
	}))
	svc, err := NewService(&fakeExecutor{}, reg, zerolog.Nop())
	require.NoError(t, err)

	req, err := svc.Build(calculator.Payload{CalculatorType: "Payback"}, true)
	require.NoError(t, err)
	assert.Equal(t, "custom", req.System)
	assert.Equal(t, "Payback", req.User)
	assert.Zero(t, req.MaxTokens)
}

func TestMemo_StripsMarkdown(t *testing.T) {
	exec := &fakeExecutor{memo: "## Outlook\n\nThe **IRR** of `16.1%` trails the *hurdle*."}
	svc := newService(t, exec)

	text, err := svc.Memo(context.Background(), dealPayload())
	require.NoError(t, err)
	assert.Equal(t, "Outlook\n\nThe IRR of 16.1% trails the hurdle.", text)
	assert.Equal(t, agent.AgentMemo, exec.agentType)
	assert.Equal(t, MemoMaxTokens, exec.options[llm.OptMaxTokens])
}

func TestStream_Accumulate(t *testing.T) {
	exec := &fakeExecutor{chunks: []string{"Negotiate ", "the price ", "down."}}
	svc := newService(t, exec)

	ch, err := svc.Stream(context.Background(), dealPayload())
	require.NoError(t, err)
	text, err := Accumulate(ch)
	require.NoError(t, err)
	assert.Equal(t, "Negotiate the price down.", text)
	assert.Equal(t, agent.AgentNarrative, exec.agentType)
	assert.Equal(t, VerdictMaxTokens, exec.options[llm.OptMaxTokens])
}

func TestAnalyze_Dispatch(t *testing.T) {
	exec := &fakeExecutor{memo: "memo body", chunks: []string{"short"}}
	svc := newService(t, exec)

	p := dealPayload()
	out, err := svc.Analyze(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "short", out)

	p.DetailedMemo = true
	out, err = svc.Analyze(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "memo body", out)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rate limited", &llm.StatusError{Provider: "gateway", StatusCode: 429}, ErrRateLimited},
		{"credits", &llm.StatusError{Provider: "gateway", StatusCode: 402}, ErrCreditsExhausted},
		{"server", &llm.StatusError{Provider: "gateway", StatusCode: 500}, ErrUnavailable},
		{"missing key", llm.ErrMissingAPIKey, ErrUnavailable},
		{"other", errors.New("dial tcp: refused"), ErrUnavailable},
		{"canceled", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, &fakeExecutor{err: tt.err})

			_, err := svc.Memo(context.Background(), dealPayload())
			assert.ErrorIs(t, err, tt.want)

			_, err = svc.Stream(context.Background(), dealPayload())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAccumulate_PartialOnError(t *testing.T) {
	ch := make(chan llm.Chunk, 2)
	ch <- llm.Chunk{Text: "partial"}
	ch <- llm.Chunk{Err: ErrUnavailable}
	close(ch)

	text, err := Accumulate(ch)
	assert.Equal(t, "partial", text)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func drained(t *testing.T, ch <-chan llm.Chunk) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream was not closed")
		}
	}
}

func TestStreamer_LastWriteWins(t *testing.T) {
	exec := &fakeExecutor{block: true}
	s := NewStreamer(newService(t, exec))

	first, err := s.Start(context.Background(), "deal-roi", dealPayload())
	require.NoError(t, err)
	second, err := s.Start(context.Background(), "deal-roi", dealPayload())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	drained(t, first.Chunks)
	assert.True(t, first.Canceled())
	assert.False(t, second.Canceled())

	id, ok := s.Active("deal-roi")
	require.True(t, ok)
	assert.Equal(t, second.ID, id)

	s.Cancel("deal-roi")
	drained(t, second.Chunks)

	assert.Eventually(t, func() bool {
		_, ok := s.Active("deal-roi")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestStreamer_KeysIndependent(t *testing.T) {
	exec := &fakeExecutor{chunks: []string{"a", "b"}}
	s := NewStreamer(newService(t, exec))

	one, err := s.Start(context.Background(), "future-value", dealPayload())
	require.NoError(t, err)
	two, err := s.Start(context.Background(), "payback", dealPayload())
	require.NoError(t, err)

	text, err := Accumulate(one.Chunks)
	require.NoError(t, err)
	assert.Equal(t, "ab", text)
	assert.False(t, one.Canceled())
	text, err = Accumulate(two.Chunks)
	require.NoError(t, err)
	assert.Equal(t, "ab", text)
}

func TestStreamer_StartError(t *testing.T) {
	s := NewStreamer(newService(t, &fakeExecutor{err: &llm.StatusError{StatusCode: 429}}))

	_, err := s.Start(context.Background(), "deal-roi", dealPayload())
	assert.ErrorIs(t, err, ErrRateLimited)
	_, ok := s.Active("deal-roi")
	assert.False(t, ok)
}
