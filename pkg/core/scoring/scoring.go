// Package scoring turns three normalized sub-metrics into the 1-10 quality score shared by
// every calculator, and maps that score to an executive decision.
package scoring

const (
	baselineScore = 5
	MinScore      = 1
	MaxScore      = 10
)

// Metrics are the per-calculator inputs to CalculateQualityScore.
type Metrics struct {
	PerformanceVsBenchmark float64 `json:"performanceVsBenchmark"` // actual / benchmark
	RiskAdjusted           float64 `json:"riskAdjusted"`           // 0-1
	TimeEfficiency         float64 `json:"timeEfficiency"`         // 0-1
}

// Score is CalculateQualityScore over m.
func (m Metrics) Score() int {
	return CalculateQualityScore(m.PerformanceVsBenchmark, m.RiskAdjusted, m.TimeEfficiency)
}

// CalculateQualityScore starts at 5, applies the performance, risk and time bands in that
// order and clamps the total to [1, 10].
func CalculateQualityScore(performanceVsBenchmark, riskAdjusted, timeEfficiency float64) int {
	score := baselineScore
	score += performanceDelta(performanceVsBenchmark)
	score += unitDelta(riskAdjusted)
	score += unitDelta(timeEfficiency)

	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// first matching band wins
func performanceDelta(perf float64) int {
	switch {
	case perf >= 1.5:
		return 3
	case perf >= 1.2:
		return 2
	case perf >= 1.0:
		return 1
	case perf >= 0.8:
		return -1
	default:
		return -2
	}
}

func unitDelta(v float64) int {
	switch {
	case v >= 0.7:
		return 1
	case v < 0.3:
		return -1
	default:
		return 0
	}
}
