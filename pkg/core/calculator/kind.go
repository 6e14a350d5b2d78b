// Package calculator validates raw calculator input and runs the formula library,
// benchmark lookup and quality scoring for each of the five calculators.
package calculator

import (
	"fmt"

	"alight_calculator/pkg/core/scoring"
)

// Kind identifies a calculator. The string form is used in URLs and saved deals.
type Kind string

const (
	FutureValue Kind = "future-value"
	DealROI     Kind = "deal-roi"
	Breakeven   Kind = "breakeven"
	Valuation   Kind = "valuation"
	Payback     Kind = "payback"
)

var kindInfo = map[Kind]struct {
	name      string
	context   scoring.Context
	scenarios bool
}{
	FutureValue: {"Future Value", scoring.ContextGrowth, true},
	DealROI:     {"Deal ROI", scoring.ContextDeal, true},
	Breakeven:   {"Breakeven", scoring.ContextDeal, false},
	Valuation:   {"Valuation", scoring.ContextValuation, false},
	Payback:     {"Payback", scoring.ContextPayback, false},
}

// Kinds lists calculators in display order.
func Kinds() []Kind {
	return []Kind{FutureValue, DealROI, Breakeven, Valuation, Payback}
}

// ParseKind accepts a calculator id ("deal-roi") or its display name ("Deal ROI").
func ParseKind(s string) (Kind, error) {
	if _, ok := kindInfo[Kind(s)]; ok {
		return Kind(s), nil
	}
	for k, info := range kindInfo {
		if info.name == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCalculator, s)
}

// DisplayName is the human label, also used as calculatorType in narrative payloads.
func (k Kind) DisplayName() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return string(k)
}

// Context selects the decision label set for k.
func (k Kind) Context() scoring.Context {
	if info, ok := kindInfo[k]; ok {
		return info.context
	}
	return scoring.ContextDeal
}

// SupportsScenarios reports whether bull/bear variants exist for k.
func (k Kind) SupportsScenarios() bool {
	return kindInfo[k].scenarios
}
