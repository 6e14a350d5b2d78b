package calculator

import (
	"fmt"
	"math"

	"alight_calculator/pkg/core/money"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
	"alight_calculator/pkg/core/valuation"
)

// FutureValueInput
type FutureValueInput struct {
	CurrentValue Amount `json:"currentValue"`
	GrowthRate   Amount `json:"growthRate"` // percent per year
	Years        Count  `json:"years"`
}

func (in FutureValueInput) Validate() error {
	if in.CurrentValue <= 0 {
		return invalid(FutureValue, "currentValue", "must be positive")
	}
	if in.Years <= 0 {
		return invalid(FutureValue, "years", "must be a positive whole number")
	}
	if in.Years > MaxYears {
		return invalid(FutureValue, "years", fmt.Sprintf("cannot exceed %d years", MaxYears))
	}
	if in.GrowthRate <= -100 {
		return invalid(FutureValue, "growthRate", "cannot be -100% or lower")
	}
	return nil
}

// FutureValueResult
type FutureValueResult struct {
	Assessment
	Input         FutureValueInput `json:"input"`
	FutureValue   float64          `json:"futureValue"`
	TotalGrowth   float64          `json:"totalGrowth"`
	PercentGrowth float64          `json:"percentGrowth"`
}

// FutureValue calculates the base case.
func (e *Engine) FutureValue(in FutureValueInput, industry, country string) (*FutureValueResult, error) {
	return e.futureValue(in, industry, country, scenario.Base)
}

func (e *Engine) futureValue(in FutureValueInput, industry, country string, sc scenario.Kind) (*FutureValueResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	cv, gr, yr := float64(in.CurrentValue), float64(in.GrowthRate), int(in.Years)
	g := valuation.ProjectGrowth(cv, gr, yr)
	ind := e.store.Lookup(country, industry)

	m := scoring.Metrics{
		PerformanceVsBenchmark: ratio(gr, ind.AvgGrowth),
		RiskAdjusted:           math.Min(1, ratio(gr, ind.ExcellentGrowth*1.2)),
		TimeEfficiency:         tier(float64(yr), []float64{5, 10}, []float64{0.8, 0.5}, 0.3),
	}

	res := &FutureValueResult{
		Assessment:    assess(FutureValue, m, ind, sc),
		Input:         in,
		FutureValue:   g.FutureValue,
		TotalGrowth:   g.TotalGrowth,
		PercentGrowth: g.PercentGrowth,
	}

	vsAvg := gr - ind.AvgGrowth
	switch {
	case gr >= ind.ExcellentGrowth:
		res.Analysis = fmt.Sprintf("Growing at %s%% per year beats most companies in %s %s (top players do %s%%). You're doing %s percentage points better than average.",
			fixed(gr, 1), ind.MarketName, ind.IndustryName, num(ind.ExcellentGrowth), fixed(vsAvg, 1))
	case gr >= ind.GoodGrowth:
		res.Analysis = fmt.Sprintf("Your %s%% growth is above average in %s %s (average is %s%%). The best companies grow at %s%%.",
			fixed(gr, 1), ind.MarketName, ind.IndustryName, num(ind.AvgGrowth), num(ind.ExcellentGrowth))
	case gr >= ind.AvgGrowth:
		res.Analysis = fmt.Sprintf("%s%% growth is at the %s average (%s%%). Top companies grow %s%%. %s",
			fixed(gr, 1), ind.MarketName, num(ind.AvgGrowth), num(ind.ExcellentGrowth), ind.Context)
	default:
		res.Analysis = fmt.Sprintf("Only growing %s%% per year? That's %s points below average for %s %s (%s%%). %s",
			fixed(gr, 1), fixed(math.Abs(vsAvg), 1), ind.MarketName, ind.IndustryName, num(ind.AvgGrowth), ind.Context)
	}
	return res, nil
}

func (r *FutureValueResult) Kind() Kind { return FutureValue }
func (r *FutureValueResult) sealed()    {}

func (r *FutureValueResult) PayloadInputs() map[string]any {
	return map[string]any{
		"currentValue": float64(r.Input.CurrentValue),
		"growthRate":   float64(r.Input.GrowthRate),
		"years":        int(r.Input.Years),
	}
}

func (r *FutureValueResult) PayloadResults() map[string]any {
	return map[string]any{
		"futureValue":   r.FutureValue,
		"totalGrowth":   r.TotalGrowth,
		"percentGrowth": r.PercentGrowth,
		"qualityScore":  r.QualityScore,
		"annualGrowth":  float64(r.Input.GrowthRate),
	}
}

func (r *FutureValueResult) MemoInputs() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Current Value", money.Format(float64(r.Input.CurrentValue), cur), float64(r.Input.CurrentValue)),
		amountField("Growth Rate", fixed(float64(r.Input.GrowthRate), 1)+"%", float64(r.Input.GrowthRate)),
		amountField("Years", r.Input.Years.String(), float64(r.Input.Years)),
	}
}

func (r *FutureValueResult) MemoResults() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Future Value", money.Format(r.FutureValue, cur), r.FutureValue),
		amountField("Total Growth", money.Format(r.TotalGrowth, cur), r.TotalGrowth),
		amountField("Percent Growth", fixed(r.PercentGrowth, 1)+"%", r.PercentGrowth),
	}
}

// tier returns values[i] for the first bound with v <= bounds[i], else fallback.
func tier(v float64, bounds, values []float64, fallback float64) float64 {
	for i, b := range bounds {
		if v <= b {
			return values[i]
		}
	}
	return fallback
}
