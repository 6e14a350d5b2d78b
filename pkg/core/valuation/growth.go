package valuation

import "math"

// CalculateFutureValue compounds currentValue at growthRate percent for years periods.
// Callers reject growthRate <= -100.
func CalculateFutureValue(currentValue, growthRate float64, years int) float64 {
	return currentValue * math.Pow(1+growthRate/100, float64(years))
}

// GrowthResult
type GrowthResult struct {
	FutureValue   float64
	TotalGrowth   float64 // FutureValue - CurrentValue
	PercentGrowth float64
}

// ProjectGrowth wraps CalculateFutureValue with the absolute and relative gain.
func ProjectGrowth(currentValue, growthRate float64, years int) GrowthResult {
	fv := CalculateFutureValue(currentValue, growthRate, years)
	total := fv - currentValue
	return GrowthResult{
		FutureValue:   fv,
		TotalGrowth:   total,
		PercentGrowth: total / currentValue * 100,
	}
}
