package calculator

import (
	"fmt"

	"alight_calculator/pkg/core/money"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
	"alight_calculator/pkg/core/valuation"
)

// PaybackInput
type PaybackInput struct {
	InvestmentCost Amount `json:"investmentCost"`
	AnnualSavings  Amount `json:"annualSavings"`
}

func (in PaybackInput) Validate() error {
	switch {
	case in.InvestmentCost <= 0:
		return invalid(Payback, "investmentCost", "must be positive")
	case in.AnnualSavings <= 0:
		return invalid(Payback, "annualSavings", "must be positive")
	case in.InvestmentCost/in.AnnualSavings > MaxYears:
		return invalid(Payback, "annualSavings", fmt.Sprintf("payback period exceeds %d years", MaxYears))
	}
	return nil
}

// Recommendation is the payback-period tier shown next to the projection.
type Recommendation struct {
	Level   string `json:"level"` // excellent, average, poor
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

func recommend(paybackYears float64) Recommendation {
	switch {
	case paybackYears <= 2:
		return Recommendation{"excellent", "Quick payback - Strong investment", "Rapid return on capital - low risk"}
	case paybackYears <= 4:
		return Recommendation{"average", "Moderate payback - Consider carefully", "Average payback period - standard risk"}
	default:
		return Recommendation{"poor", "Long payback - High risk", "Extended recovery period - higher risk"}
	}
}

// PaybackResult
type PaybackResult struct {
	Assessment
	Input PaybackInput `json:"input"`
	valuation.PaybackResult
	InflationRate  float64        `json:"inflationRate"`
	Year3Profit    float64        `json:"year3Profit"`
	Year5Profit    float64        `json:"year5Profit"`
	Recommendation Recommendation `json:"recommendation"`
}

// Payback uses the market's average inflation for the real-value analysis.
func (e *Engine) Payback(in PaybackInput, industry, country string) (*PaybackResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	cost, savings := float64(in.InvestmentCost), float64(in.AnnualSavings)
	ind := e.store.Lookup(country, industry)
	p := valuation.CalculatePaybackAnalysis(cost, savings, ind.AvgInflation)

	m := scoring.Metrics{
		PerformanceVsBenchmark: p.ROI / 25,
		RiskAdjusted:           tier(p.PaybackYears, []float64{3, 5}, []float64{0.9, 0.5}, 0.2),
		TimeEfficiency:         tier(p.PaybackYears, []float64{2, 4}, []float64{0.9, 0.6}, 0.2),
	}

	res := &PaybackResult{
		Assessment:     assess(Payback, m, ind, scenario.Base),
		Input:          in,
		PaybackResult:  p,
		InflationRate:  ind.AvgInflation,
		Year3Profit:    valuation.CumulativeProfit(cost, savings, 3),
		Year5Profit:    valuation.CumulativeProfit(cost, savings, 5),
		Recommendation: recommend(p.PaybackYears),
	}

	cur := ind.Currency
	res.Analysis = fmt.Sprintf("Investment of %s with %s annual returns. Payback in %s years. After inflation (%s%%), real purchasing power retained: %s%%.",
		money.Format(cost, cur), money.Format(savings, cur), fixed(p.PaybackYears, 1), num(ind.AvgInflation), fixed(p.PurchasingPowerRetained, 0))
	return res, nil
}

// PaybackLabel renders the period in months below one year ("9.0 months", "3.3 years").
func PaybackLabel(years float64) string {
	if years < 1 {
		return fixed(years*12, 1) + " months"
	}
	return fixed(years, 1) + " years"
}

func (r *PaybackResult) Kind() Kind { return Payback }
func (r *PaybackResult) sealed()    {}

func (r *PaybackResult) PayloadInputs() map[string]any {
	return map[string]any{
		"investmentCost": float64(r.Input.InvestmentCost),
		"annualSavings":  float64(r.Input.AnnualSavings),
	}
}

func (r *PaybackResult) PayloadResults() map[string]any {
	return map[string]any{
		"paybackYears":            r.PaybackYears,
		"roi":                     r.ROI,
		"year3Profit":             r.Year3Profit,
		"year5Profit":             r.Year5Profit,
		"realCumulativeSavings":   r.RealCumulativeSavings,
		"purchasingPowerRetained": r.PurchasingPowerRetained,
		"qualityScore":            r.QualityScore,
	}
}

func (r *PaybackResult) MemoInputs() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Investment Cost", money.Format(float64(r.Input.InvestmentCost), cur), float64(r.Input.InvestmentCost)),
		amountField("Annual Savings/Earnings", money.Format(float64(r.Input.AnnualSavings), cur), float64(r.Input.AnnualSavings)),
	}
}

func (r *PaybackResult) MemoResults() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Payback Period", PaybackLabel(r.PaybackYears), r.PaybackYears),
		amountField("Annual ROI", fixed(r.ROI, 1)+"%", r.ROI),
		amountField("3-Year Profit", money.Format(r.Year3Profit, cur), r.Year3Profit),
		amountField("5-Year Profit", money.Format(r.Year5Profit, cur), r.Year5Profit),
		amountField("Real Value (Inflation-Adj)", money.Format(r.RealCumulativeSavings, cur), r.RealCumulativeSavings),
	}
}
