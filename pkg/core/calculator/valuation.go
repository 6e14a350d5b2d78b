package calculator

import (
	"fmt"

	"alight_calculator/pkg/core/money"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
	"alight_calculator/pkg/core/valuation"
)

// ValuationInput
type ValuationInput struct {
	Revenue Amount `json:"revenue"`
	EBITDA  Amount `json:"ebitda"`
}

func (in ValuationInput) Validate() error {
	switch {
	case in.Revenue <= 0:
		return invalid(Valuation, "revenue", "must be positive")
	case in.EBITDA <= 0:
		return invalid(Valuation, "ebitda", "must be positive")
	case in.EBITDA > in.Revenue:
		return invalid(Valuation, "ebitda", "cannot exceed revenue")
	}
	return nil
}

// ValuationResult
type ValuationResult struct {
	Assessment
	Input ValuationInput `json:"input"`
	valuation.RelativeValuationResult
}

// Valuation prices the business off the industry EV/EBITDA multiple.
func (e *Engine) Valuation(in ValuationInput, industry, country string) (*ValuationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ind := e.store.Lookup(country, industry)
	v := valuation.CalculateValuationRange(valuation.MetricInput{
		Revenue: float64(in.Revenue),
		EBITDA:  float64(in.EBITDA),
	}, ind.AvgMultiple)
	margin := v.EBITDAMargin

	risk := 0.3
	switch {
	case v.EVRevenue >= 2:
		risk = 0.8
	case v.EVRevenue >= 1:
		risk = 0.5
	}
	timeEff := 0.4
	if margin >= ind.AvgMargin {
		timeEff = 0.7
	}
	m := scoring.Metrics{
		PerformanceVsBenchmark: ratio(margin, ind.AvgMargin),
		RiskAdjusted:           risk,
		TimeEfficiency:         timeEff,
	}

	res := &ValuationResult{
		Assessment:              assess(Valuation, m, ind, scenario.Base),
		Input:                   in,
		RelativeValuationResult: v,
	}

	mid := money.Format(v.Mid, ind.Currency)
	switch {
	case margin >= ind.AvgMargin+5:
		res.Analysis = fmt.Sprintf("Your %s%% profit margin is well above average for %s %s (%s%%). Buyers will pay a premium, around %s or more. You're running a tight ship.",
			fixed(margin, 1), ind.MarketName, ind.IndustryName, num(ind.AvgMargin), mid)
	case margin >= ind.AvgMargin:
		standing := "Right at average"
		if margin-ind.AvgMargin > 0 {
			standing = "Slightly better than average"
		}
		res.Analysis = fmt.Sprintf("%s%% profit margin is about average for %s %s (%s%%). Worth around %s. %s, improve margins and you'll get more when you sell.",
			fixed(margin, 1), ind.MarketName, ind.IndustryName, num(ind.AvgMargin), mid, standing)
	default:
		res.Analysis = fmt.Sprintf("Your %s%% profit margin is below average for %s %s (they do %s%%). Worth about %s, but buyers will want a discount. Fix your margins before selling.",
			fixed(margin, 1), ind.MarketName, ind.IndustryName, num(ind.AvgMargin), mid)
	}
	return res, nil
}

func (r *ValuationResult) Kind() Kind { return Valuation }
func (r *ValuationResult) sealed()    {}

func (r *ValuationResult) PayloadInputs() map[string]any {
	return map[string]any{
		"revenue": float64(r.Input.Revenue),
		"ebitda":  float64(r.Input.EBITDA),
	}
}

func (r *ValuationResult) PayloadResults() map[string]any {
	return map[string]any{
		"valuationLow":  r.Low,
		"valuationMid":  r.Mid,
		"valuationHigh": r.High,
		"margin":        r.EBITDAMargin,
		"evToRevenue":   r.EVRevenue,
		"qualityScore":  r.QualityScore,
	}
}

func (r *ValuationResult) MemoInputs() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Revenue", money.Format(float64(r.Input.Revenue), cur), float64(r.Input.Revenue)),
		amountField("EBITDA", money.Format(float64(r.Input.EBITDA), cur), float64(r.Input.EBITDA)),
	}
}

func (r *ValuationResult) MemoResults() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Conservative", money.Format(r.Low, cur), r.Low),
		amountField("Market Value", money.Format(r.Mid, cur), r.Mid),
		amountField("Optimistic", money.Format(r.High, cur), r.High),
		amountField("EBITDA Margin", fixed(r.EBITDAMargin, 1)+"%", r.EBITDAMargin),
		amountField("EV / Revenue", fixed(r.EVRevenue, 2)+"x", r.EVRevenue),
	}
}
