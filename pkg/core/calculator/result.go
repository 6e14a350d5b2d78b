package calculator

import (
	"math"
	"strconv"

	"alight_calculator/pkg/core/benchmark"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
)

// Assessment is the part of every result shared across calculators.
type Assessment struct {
	QualityScore int               `json:"qualityScore"`
	Decision     scoring.Decision  `json:"decision"`
	Metrics      scoring.Metrics   `json:"metrics"`
	Benchmark    benchmark.Profile `json:"benchmark"`
	Analysis     string            `json:"analysis"`
	Scenario     scenario.Kind     `json:"scenario"`
}

// Field is one labelled line of an exported memo. Amount carries the raw number when the
// value is numeric so spreadsheet exports can keep it as a number.
type Field struct {
	Label  string   `json:"label"`
	Value  string   `json:"value"`
	Amount *float64 `json:"amount,omitempty"`
}

// Result is implemented by the five per-calculator result records.
type Result interface {
	Kind() Kind
	Summary() Assessment
	// PayloadInputs and PayloadResults feed the narrative payload.
	PayloadInputs() map[string]any
	PayloadResults() map[string]any
	MemoInputs() []Field
	MemoResults() []Field

	sealed()
}

// Payload is the request body handed to the narrative collaborator.
type Payload struct {
	CalculatorType string         `json:"calculatorType"`
	Inputs         map[string]any `json:"inputs"`
	Results        map[string]any `json:"results"`
	Industry       string         `json:"industry"`
	Country        string         `json:"country"`
	DetailedMemo   bool           `json:"detailedMemo,omitempty"`
}

// NewPayload builds the narrative payload for r.
func NewPayload(r Result) Payload {
	a := r.Summary()
	return Payload{
		CalculatorType: r.Kind().DisplayName(),
		Inputs:         r.PayloadInputs(),
		Results:        r.PayloadResults(),
		Industry:       a.Benchmark.Industry,
		Country:        a.Benchmark.Market,
	}
}

func (a Assessment) Summary() Assessment { return a }

func assess(k Kind, m scoring.Metrics, profile benchmark.Profile, sc scenario.Kind) Assessment {
	score := m.Score()
	return Assessment{
		QualityScore: score,
		Decision:     scoring.GetExecutiveDecision(score, k.Context()),
		Metrics:      m,
		Benchmark:    profile,
		Scenario:     sc,
	}
}

// ratio is n/d for scoring. A zero benchmark (allowed in override files) scores as 0
// rather than producing Inf or NaN metrics.
func ratio(n, d float64) float64 {
	r := n / d
	if d == 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return 0
	}
	return r
}

// num renders a benchmark figure the way it is written in the tables ("8", "3.4").
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

func field(label, value string) Field {
	return Field{Label: label, Value: value}
}

func amountField(label, value string, amount float64) Field {
	return Field{Label: label, Value: value, Amount: &amount}
}
