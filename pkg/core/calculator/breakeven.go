package calculator

import (
	"fmt"

	"alight_calculator/pkg/core/money"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
	"alight_calculator/pkg/core/valuation"
)

// BreakevenInput
type BreakevenInput struct {
	FixedCosts   Amount `json:"fixedCosts"` // monthly
	PricePerUnit Amount `json:"pricePerUnit"`
	CostPerUnit  Amount `json:"costPerUnit"`
}

func (in BreakevenInput) Validate() error {
	switch {
	case in.FixedCosts <= 0:
		return invalid(Breakeven, "fixedCosts", "must be positive")
	case in.PricePerUnit <= 0:
		return invalid(Breakeven, "pricePerUnit", "must be positive")
	case in.CostPerUnit < 0:
		return invalid(Breakeven, "costPerUnit", "cannot be negative")
	case in.PricePerUnit <= in.CostPerUnit:
		return invalid(Breakeven, "pricePerUnit", "must be greater than cost per unit")
	}
	return nil
}

// BreakevenResult
type BreakevenResult struct {
	Assessment
	Input BreakevenInput `json:"input"`
	valuation.BreakevenResult
}

// Breakeven
func (e *Engine) Breakeven(in BreakevenInput, industry, country string) (*BreakevenResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	fc := float64(in.FixedCosts)
	b := valuation.CalculateBreakeven(fc, float64(in.PricePerUnit), float64(in.CostPerUnit))
	ind := e.store.Lookup(country, industry)

	risk := 0.2
	switch {
	case b.ProfitMargin >= 30:
		risk = 0.8
	case b.ProfitMargin >= 15:
		risk = 0.5
	}
	m := scoring.Metrics{
		PerformanceVsBenchmark: ratio(b.ProfitMargin, ind.AvgMargin),
		RiskAdjusted:           risk,
		TimeEfficiency:         tier(b.BreakevenUnits, []float64{1000, 5000}, []float64{0.8, 0.5}, 0.2),
	}

	res := &BreakevenResult{
		Assessment:      assess(Breakeven, m, ind, scenario.Base),
		Input:           in,
		BreakevenResult: b,
	}

	cur := ind.Currency
	units := money.Number(b.BreakevenUnits, 0)
	margin := fixed(b.ProfitMargin, 0)
	switch {
	case b.ProfitMargin >= 50:
		res.Analysis = fmt.Sprintf("Your %s%% margin is healthy. Each unit sold contributes %s toward covering your %s monthly overhead. At %s units, you break even. Every unit beyond that is %s%% profit. For %s in %s, the average margin is %s%%, you're well above that.",
			margin, money.Format(b.Contribution, cur), money.Format(fc, cur), units, margin, ind.IndustryName, ind.MarketName, num(ind.AvgMargin))
	case b.ProfitMargin >= 30:
		standing := "you're slightly below industry average"
		if b.ProfitMargin >= ind.AvgMargin {
			standing = "you're above par"
		}
		res.Analysis = fmt.Sprintf("With a %s%% margin, you need %s monthly sales to cover %s in fixed costs. Each unit adds %s to the bottom line. %s in %s averages %s%% margins, %s.",
			margin, units, money.Format(fc, cur), money.Format(b.Contribution, cur), ind.IndustryName, ind.MarketName, num(ind.AvgMargin), standing)
	case b.ProfitMargin >= 15:
		res.Analysis = fmt.Sprintf("Your %s%% margin means tight unit economics. Breaking even at %s units requires consistent volume. The %s per-unit contribution leaves little room for discounting. Industry average in %s %s is %s%%.",
			margin, units, money.Format(b.Contribution, cur), ind.MarketName, ind.IndustryName, num(ind.AvgMargin))
	default:
		res.Analysis = fmt.Sprintf("At %s%%, margins are razor-thin. You need %s units just to cover %s overhead. With only %s contribution per unit, small cost increases are dangerous. %s in %s typically runs %s%% margins. This model needs restructuring.",
			margin, units, money.Format(fc, cur), money.Format(b.Contribution, cur), ind.IndustryName, ind.MarketName, num(ind.AvgMargin))
	}
	return res, nil
}

func (r *BreakevenResult) Kind() Kind { return Breakeven }
func (r *BreakevenResult) sealed()    {}

func (r *BreakevenResult) PayloadInputs() map[string]any {
	return map[string]any{
		"fixedCosts":   float64(r.Input.FixedCosts),
		"pricePerUnit": float64(r.Input.PricePerUnit),
		"costPerUnit":  float64(r.Input.CostPerUnit),
	}
}

func (r *BreakevenResult) PayloadResults() map[string]any {
	return map[string]any{
		"breakevenUnits":   r.BreakevenUnits,
		"breakevenRevenue": r.BreakevenRevenue,
		"profitMargin":     r.ProfitMargin,
		"contribution":     r.Contribution,
		"qualityScore":     r.QualityScore,
	}
}

func (r *BreakevenResult) MemoInputs() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Fixed Costs (monthly)", money.Format(float64(r.Input.FixedCosts), cur), float64(r.Input.FixedCosts)),
		amountField("Price per Unit", money.FormatPlaces(float64(r.Input.PricePerUnit), cur, 2), float64(r.Input.PricePerUnit)),
		amountField("Cost per Unit", money.FormatPlaces(float64(r.Input.CostPerUnit), cur, 2), float64(r.Input.CostPerUnit)),
	}
}

func (r *BreakevenResult) MemoResults() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Breakeven Units", money.Number(r.BreakevenUnits, 0), r.BreakevenUnits),
		amountField("Breakeven Revenue", money.Format(r.BreakevenRevenue, cur), r.BreakevenRevenue),
		amountField("Contribution per Unit", money.FormatPlaces(r.Contribution, cur, 2), r.Contribution),
		amountField("Profit Margin", fixed(r.ProfitMargin, 1)+"%", r.ProfitMargin),
	}
}
