package valuation

// Percentile spread applied to the industry EV/EBITDA multiple.
const (
	LowMultipleFactor  = 0.75 // ~25th percentile
	HighMultipleFactor = 1.35 // ~75th percentile
)

// MetricInput holds the target company's trailing figures.
type MetricInput struct {
	Revenue float64
	EBITDA  float64
}

// RelativeValuationResult holds the valuation range derived from an industry multiple
type RelativeValuationResult struct {
	Low          float64 `json:"valuationLow"`
	Mid          float64 `json:"valuationMid"`
	High         float64 `json:"valuationHigh"`
	EVRevenue    float64 `json:"evToRevenue"` // Mid / Revenue
	EBITDAMargin float64 `json:"margin"`      // percent
}

// CalculateValuationRange applies the industry average EV/EBITDA multiple to the target,
// with a low/high band around it.
func CalculateValuationRange(target MetricInput, avgMultiple float64) RelativeValuationResult {
	mid := target.EBITDA * avgMultiple
	res := RelativeValuationResult{
		Low:  target.EBITDA * (avgMultiple * LowMultipleFactor),
		Mid:  mid,
		High: target.EBITDA * (avgMultiple * HighMultipleFactor),
	}
	if target.Revenue > 0 {
		res.EVRevenue = mid / target.Revenue
		res.EBITDAMargin = target.EBITDA / target.Revenue * 100
	}
	return res
}
