package valuation

import (
	"math"
)

// Bisection bracket for CalculateIRR, as fractions (-50% .. 1000%).
const (
	IRRFloor         = -0.5
	IRRCeiling       = 10.0
	IRRMaxIterations = 200
	IRRTolerance     = 0.01 // absolute currency units of NPV
)

// NPV discounts cashFlows period by period: sum of cf_t / (1+rate)^t, t starting at 0.
func NPV(rate float64, cashFlows []float64) float64 {
	var sum float64
	for t, cf := range cashFlows {
		sum += cf / math.Pow(1+rate, float64(t))
	}
	return sum
}

// CalculateIRR returns the internal rate of return of cashFlows in percent units.
//
// The root is searched by bisection on [IRRFloor, IRRCeiling]. A root below the floor
// saturates to -50, one above the ceiling to 1000. Series with more than one sign change
// are not detected; the solver returns whichever root the bracket narrows to.
func CalculateIRR(cashFlows []float64) float64 {
	low, high := IRRFloor, IRRCeiling

	if NPV(low, cashFlows) < 0 {
		return low * 100
	}
	if NPV(high, cashFlows) > 0 {
		return high * 100
	}

	for i := 0; i < IRRMaxIterations; i++ {
		mid := (low + high) / 2
		val := NPV(mid, cashFlows)
		if math.Abs(val) < IRRTolerance {
			return mid * 100
		}
		if val > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2 * 100
}
