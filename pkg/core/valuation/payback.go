package valuation

import "math"

// PaybackResult
type PaybackResult struct {
	PaybackYears            float64 `json:"paybackYears"`
	ROI                     float64 `json:"roi"`                   // annual, percent
	RealCumulativeSavings   float64 `json:"realCumulativeSavings"` // savings up to payback in today's purchasing power
	NominalTotal            float64 `json:"nominalTotal"`          // equals the investment cost
	InflationLoss           float64 `json:"inflationLoss"`
	PurchasingPowerRetained float64 `json:"purchasingPowerRetained"` // percent
}

// CalculatePaybackAnalysis measures how long annualSavings take to recover investmentCost
// and how much of that recovery inflation erodes.
func CalculatePaybackAnalysis(investmentCost, annualSavings, inflationRate float64) PaybackResult {
	paybackYears := investmentCost / annualSavings
	roi := annualSavings / investmentCost * 100

	// Each whole year is discounted at (1+i)^y. A trailing partial year uses the next
	// whole-year factor.
	growth := 1 + inflationRate/100
	fullYears := math.Floor(paybackYears)
	fraction := paybackYears - fullYears

	realValue := discountedAnnuity(annualSavings, growth, fullYears)
	if fraction > 0 {
		realValue += annualSavings * fraction / math.Pow(growth, fullYears+1)
	}

	nominal := annualSavings * paybackYears
	return PaybackResult{
		PaybackYears:            paybackYears,
		ROI:                     roi,
		RealCumulativeSavings:   realValue,
		NominalTotal:            nominal,
		InflationLoss:           nominal - realValue,
		PurchasingPowerRetained: realValue / nominal * 100,
	}
}

// CumulativeProfit is savings over a fixed horizon net of the investment cost.
func CumulativeProfit(investmentCost, annualSavings float64, years int) float64 {
	return annualSavings*float64(years) - investmentCost
}

// discountedAnnuity is sum(s / g^y) for y = 1..n in closed form.
func discountedAnnuity(s, g, n float64) float64 {
	if n <= 0 {
		return 0
	}
	if g == 1 {
		return s * n
	}
	return s * (1 - math.Pow(g, -n)) / (g - 1)
}
