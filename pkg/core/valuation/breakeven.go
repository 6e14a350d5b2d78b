package valuation

import "math"

// BreakevenResult
type BreakevenResult struct {
	BreakevenUnits   float64 `json:"breakevenUnits"`   // +Inf when contribution <= 0
	BreakevenRevenue float64 `json:"breakevenRevenue"` // +Inf when contribution <= 0
	ProfitMargin     float64 `json:"profitMargin"`     // contribution margin, percent of price
	Contribution     float64 `json:"contribution"`
}

// Viable reports whether fixed costs can ever be recovered by volume.
func (r BreakevenResult) Viable() bool {
	return !math.IsInf(r.BreakevenUnits, 1)
}

// CalculateBreakeven returns the unit volume at which contribution covers fixedCosts.
// A non-positive contribution is not an error: units and revenue come back as +Inf.
func CalculateBreakeven(fixedCosts, pricePerUnit, costPerUnit float64) BreakevenResult {
	contribution := pricePerUnit - costPerUnit
	if contribution <= 0 {
		return BreakevenResult{
			BreakevenUnits:   math.Inf(1),
			BreakevenRevenue: math.Inf(1),
			ProfitMargin:     0,
			Contribution:     contribution,
		}
	}

	// partial units cannot be sold
	units := math.Ceil(fixedCosts / contribution)
	return BreakevenResult{
		BreakevenUnits:   units,
		BreakevenRevenue: units * pricePerUnit,
		ProfitMargin:     contribution / pricePerUnit * 100,
		Contribution:     contribution,
	}
}
