package calculator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"alight_calculator/pkg/core/benchmark"
	"alight_calculator/pkg/core/scenario"
)

// Engine runs calculators against a benchmark store.
type Engine struct {
	store *benchmark.Store
}

// NewEngine uses the built-in benchmark tables when store is nil.
func NewEngine(store *benchmark.Store) *Engine {
	if store == nil {
		store = benchmark.Default()
	}
	return &Engine{store: store}
}

// Benchmarks exposes the engine's benchmark store.
func (e *Engine) Benchmarks() *benchmark.Store {
	return e.store
}

// Request is the transport-neutral form of a calculation: raw inputs plus market context.
type Request struct {
	Inputs   json.RawMessage `json:"inputs"`
	Industry string          `json:"industry"`
	Country  string          `json:"country"`
	Scenario string          `json:"scenario,omitempty"`
}

// Run decodes req.Inputs for calculator k and calculates it. A non-base scenario is only
// accepted by calculators that support scenarios.
func (e *Engine) Run(k Kind, req Request) (Result, error) {
	sc, err := scenario.Parse(req.Scenario)
	if err != nil {
		return nil, &ValidationError{Calculator: k, Field: "scenario", Message: err.Error()}
	}
	if sc != scenario.Base && !k.SupportsScenarios() {
		return nil, fmt.Errorf("%w: %s", ErrNoScenarios, k)
	}

	switch k {
	case FutureValue, DealROI:
		s, err := e.NewSession(k, req)
		if err != nil {
			return nil, err
		}
		return s.Switch(sc)
	case Breakeven:
		var in BreakevenInput
		if err := decodeInputs(k, req.Inputs, &in); err != nil {
			return nil, err
		}
		return e.Breakeven(in, req.Industry, req.Country)
	case Valuation:
		var in ValuationInput
		if err := decodeInputs(k, req.Inputs, &in); err != nil {
			return nil, err
		}
		return e.Valuation(in, req.Industry, req.Country)
	case Payback:
		var in PaybackInput
		if err := decodeInputs(k, req.Inputs, &in); err != nil {
			return nil, err
		}
		return e.Payback(in, req.Industry, req.Country)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, k)
	}
}

// NewSession decodes req.Inputs and opens a scenario session for k. req.Scenario is ignored;
// the session starts at base.
func (e *Engine) NewSession(k Kind, req Request) (*Session, error) {
	switch k {
	case FutureValue:
		var in FutureValueInput
		if err := decodeInputs(k, req.Inputs, &in); err != nil {
			return nil, err
		}
		return e.NewFutureValueSession(in, req.Industry, req.Country)
	case DealROI:
		var in DealInput
		if err := decodeInputs(k, req.Inputs, &in); err != nil {
			return nil, err
		}
		return e.NewDealSession(in, req.Industry, req.Country)
	}
	if _, ok := kindInfo[k]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, k)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoScenarios, k)
}

func decodeInputs(k Kind, raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return &ValidationError{Calculator: k, Message: "inputs are required"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Calculator: k, Field: "inputs", Message: err.Error()}
	}
	return nil
}
