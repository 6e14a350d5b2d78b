package valuation

import (
	"math"
	"testing"
)

func TestCalculateIRR_SimpleOnePeriod(t *testing.T) {
	// -100 today, 110 next year => 10%
	irr := CalculateIRR([]float64{-100, 110})
	if math.Abs(irr-10) > 0.02 {
		t.Errorf("Expected IRR ~10%%, got %f", irr)
	}
}

func TestCalculateIRR_DealShapeConverges(t *testing.T) {
	cases := [][]float64{
		BuildDealCashFlows(100, 10, 5, 8),
		BuildDealCashFlows(50_000_000, 6_250_000, 5, 10),
		BuildDealCashFlows(2_000_000, 150_000, 7, 4),
		BuildDealCashFlows(1000, 400, 3, 6),
	}

	for i, flows := range cases {
		irr := CalculateIRR(flows)
		if irr == -50 || irr == 1000 {
			continue
		}
		npv := NPV(irr/100, flows)
		if math.Abs(npv) >= IRRTolerance {
			t.Errorf("case %d: NPV at IRR %f should be ~0, got %f", i, irr, npv)
		}
	}
}

func TestCalculateIRR_Saturation(t *testing.T) {
	// Almost nothing comes back: root below -50%
	if got := CalculateIRR([]float64{-100, 1}); got != -50 {
		t.Errorf("Expected floor -50, got %f", got)
	}
	// 100x in a year: root above 1000%
	if got := CalculateIRR([]float64{-1, 100}); got != 1000 {
		t.Errorf("Expected ceiling 1000, got %f", got)
	}
}

func TestCalculateIRR_Deterministic(t *testing.T) {
	flows := BuildDealCashFlows(50_000_000, 6_250_000, 5, 10)
	a := CalculateIRR(flows)
	b := CalculateIRR(flows)
	if a != b {
		t.Errorf("IRR not reproducible: %f vs %f", a, b)
	}
}

func TestBuildDealCashFlows(t *testing.T) {
	flows := BuildDealCashFlows(100, 10, 3, 5)
	expected := []float64{-100, 10, 10, 60}

	if len(flows) != len(expected) {
		t.Fatalf("Expected %d periods, got %d", len(expected), len(flows))
	}
	for i := range expected {
		if flows[i] != expected[i] {
			t.Errorf("period %d: expected %f, got %f", i, expected[i], flows[i])
		}
	}
}

func TestCalculateMOIC_IncludesInterimCashFlows(t *testing.T) {
	tests := []struct {
		pp, cf    float64
		years     int
		exitValue float64
	}{
		{100, 10, 5, 80},
		{50_000_000, 6_250_000, 5, 62_500_000},
		{3, 0, 1, 3},
	}

	for _, tt := range tests {
		got := CalculateMOIC(tt.pp, tt.cf, tt.years, tt.exitValue)
		want := (tt.cf*float64(tt.years) + tt.exitValue) / tt.pp
		if got != want {
			t.Errorf("MOIC(%v) = %f, want %f", tt, got, want)
		}
	}
}

func TestCalculateCAGR(t *testing.T) {
	if got := CalculateCAGR(100, 121, 2); math.Abs(got-10) > 1e-9 {
		t.Errorf("Expected CAGR 10%%, got %f", got)
	}
	if got := CalculateCAGR(0, 121, 2); got != 0 {
		t.Errorf("Expected 0 for non-positive initial, got %f", got)
	}
	if got := CalculateCAGR(100, 121, 0); got != 0 {
		t.Errorf("Expected 0 for zero years, got %f", got)
	}
}

func TestAnalyzeDeal(t *testing.T) {
	res := AnalyzeDeal(DealInput{
		PurchasePrice: 100,
		AnnualEBITDA:  10,
		HoldingYears:  5,
		ExitMultiple:  8,
	})

	if res.ExitValue != 80 {
		t.Errorf("Expected exit value 80, got %f", res.ExitValue)
	}
	// (10*5 + 80) / 100
	if math.Abs(res.MOIC-1.3) > 1e-9 {
		t.Errorf("Expected MOIC 1.3, got %f", res.MOIC)
	}
	// (80 + 50 - 100) / 100
	if math.Abs(res.CashReturn-30) > 1e-9 {
		t.Errorf("Expected cash return 30%%, got %f", res.CashReturn)
	}
	if res.PaybackPeriod != 10 {
		t.Errorf("Expected payback 10 years, got %f", res.PaybackPeriod)
	}
	if len(res.CashFlows) != 6 {
		t.Errorf("Expected 6 cash flows, got %d", len(res.CashFlows))
	}
	if math.Abs(NPV(res.IRR/100, res.CashFlows)) >= IRRTolerance {
		t.Errorf("IRR %f does not zero the NPV", res.IRR)
	}
}

func TestCalculateFutureValue(t *testing.T) {
	fv := CalculateFutureValue(500000, 5, 10)
	if math.Abs(fv-814447.3) > 0.1 {
		t.Errorf("Expected ~814447.3, got %f", fv)
	}

	// negative growth shrinks the value
	if fv := CalculateFutureValue(1000, -10, 2); math.Abs(fv-810) > 1e-9 {
		t.Errorf("Expected 810, got %f", fv)
	}
}

func TestProjectGrowth(t *testing.T) {
	res := ProjectGrowth(1000, 10, 2)
	if math.Abs(res.FutureValue-1210) > 1e-9 {
		t.Errorf("Expected 1210, got %f", res.FutureValue)
	}
	if math.Abs(res.TotalGrowth-210) > 1e-9 {
		t.Errorf("Expected 210, got %f", res.TotalGrowth)
	}
	if math.Abs(res.PercentGrowth-21) > 1e-9 {
		t.Errorf("Expected 21%%, got %f", res.PercentGrowth)
	}
}

func TestCalculateBreakeven(t *testing.T) {
	res := CalculateBreakeven(100000, 50, 20)

	if res.Contribution != 30 {
		t.Errorf("Expected contribution 30, got %f", res.Contribution)
	}
	if res.BreakevenUnits != 3334 {
		t.Errorf("Expected 3334 units, got %f", res.BreakevenUnits)
	}
	if res.BreakevenRevenue != 166700 {
		t.Errorf("Expected revenue 166700, got %f", res.BreakevenRevenue)
	}
	if math.Abs(res.ProfitMargin-60) > 1e-9 {
		t.Errorf("Expected margin 60%%, got %f", res.ProfitMargin)
	}
	if !res.Viable() {
		t.Error("Expected viable result")
	}
}

func TestCalculateBreakeven_NotViable(t *testing.T) {
	for _, cost := range []float64{50, 60} {
		res := CalculateBreakeven(100000, 50, cost)
		if !math.IsInf(res.BreakevenUnits, 1) {
			t.Errorf("cost %f: expected +Inf units, got %f", cost, res.BreakevenUnits)
		}
		if !math.IsInf(res.BreakevenRevenue, 1) {
			t.Errorf("cost %f: expected +Inf revenue, got %f", cost, res.BreakevenRevenue)
		}
		if res.ProfitMargin != 0 {
			t.Errorf("cost %f: expected 0 margin, got %f", cost, res.ProfitMargin)
		}
		if res.Viable() {
			t.Errorf("cost %f: expected not viable", cost)
		}
	}
}

func TestCalculatePaybackAnalysis(t *testing.T) {
	res := CalculatePaybackAnalysis(2000000, 600000, 2.8)

	if math.Abs(res.PaybackYears-10.0/3.0) > 1e-9 {
		t.Errorf("Expected payback 3.333, got %f", res.PaybackYears)
	}
	if math.Abs(res.ROI-30) > 1e-9 {
		t.Errorf("Expected ROI 30%%, got %f", res.ROI)
	}
	if math.Abs(res.NominalTotal-2000000) > 1e-6 {
		t.Errorf("Expected nominal total 2,000,000, got %f", res.NominalTotal)
	}
	if res.RealCumulativeSavings >= res.NominalTotal {
		t.Errorf("Inflation should reduce real savings: real %f, nominal %f", res.RealCumulativeSavings, res.NominalTotal)
	}

	// 3 whole years plus 1/3 of a year discounted at the year-4 factor
	g := 1.028
	want := 600000/g + 600000/math.Pow(g, 2) + 600000/math.Pow(g, 3) + 600000*(res.PaybackYears-3)/math.Pow(g, 4)
	if math.Abs(res.RealCumulativeSavings-want) > 1e-6 {
		t.Errorf("Expected real savings %f, got %f", want, res.RealCumulativeSavings)
	}
	if math.Abs(res.InflationLoss-(res.NominalTotal-res.RealCumulativeSavings)) > 1e-9 {
		t.Errorf("Inflation loss mismatch: %f", res.InflationLoss)
	}
}

func TestCalculatePaybackAnalysis_NominalEqualsCost(t *testing.T) {
	inputs := [][3]float64{
		{1000, 300, 5},
		{750000, 1000000, 0},
		{123456, 7890, 12.5},
	}
	for _, in := range inputs {
		res := CalculatePaybackAnalysis(in[0], in[1], in[2])
		if math.Abs(res.NominalTotal-in[0]) > 1e-6*in[0] {
			t.Errorf("%v: nominal total %f should equal cost", in, res.NominalTotal)
		}
	}

	// zero inflation keeps full purchasing power
	res := CalculatePaybackAnalysis(1000, 300, 0)
	if math.Abs(res.PurchasingPowerRetained-100) > 1e-9 {
		t.Errorf("Expected 100%% retained at zero inflation, got %f", res.PurchasingPowerRetained)
	}
}

func TestCalculatePaybackAnalysis_LongHorizon(t *testing.T) {
	// a billion whole years must not be iterated
	res := CalculatePaybackAnalysis(1e12, 1000, 2)
	if math.Abs(res.PaybackYears-1e9) > 1e-3 {
		t.Errorf("Expected payback 1e9 years, got %f", res.PaybackYears)
	}
	// perpetuity limit s/(g-1)
	if math.Abs(res.RealCumulativeSavings-1000/0.02) > 1e-6 {
		t.Errorf("Expected real savings near 50000, got %f", res.RealCumulativeSavings)
	}
}

func TestDiscountedAnnuity(t *testing.T) {
	g := 1.05
	want := 0.0
	for y := 1; y <= 7; y++ {
		want += 100 / math.Pow(g, float64(y))
	}
	if got := discountedAnnuity(100, g, 7); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %f, got %f", want, got)
	}
	if got := discountedAnnuity(100, 1, 7); got != 700 {
		t.Errorf("Expected 700 at zero inflation, got %f", got)
	}
	if got := discountedAnnuity(100, g, 0); got != 0 {
		t.Errorf("Expected 0 for no whole years, got %f", got)
	}
}

func TestCumulativeProfit(t *testing.T) {
	if got := CumulativeProfit(2000000, 600000, 3); got != -200000 {
		t.Errorf("Expected -200000, got %f", got)
	}
	if got := CumulativeProfit(2000000, 600000, 5); got != 1000000 {
		t.Errorf("Expected 1000000, got %f", got)
	}
}

func TestCalculateValuationRange(t *testing.T) {
	res := CalculateValuationRange(MetricInput{Revenue: 10_000_000, EBITDA: 2_000_000}, 8)

	if res.Mid != 16_000_000 {
		t.Errorf("Expected mid 16M, got %f", res.Mid)
	}
	if math.Abs(res.Low-12_000_000) > 1e-6 {
		t.Errorf("Expected low 12M, got %f", res.Low)
	}
	if math.Abs(res.High-21_600_000) > 1e-6 {
		t.Errorf("Expected high 21.6M, got %f", res.High)
	}
	if math.Abs(res.EVRevenue-1.6) > 1e-9 {
		t.Errorf("Expected EV/Revenue 1.6, got %f", res.EVRevenue)
	}
	if math.Abs(res.EBITDAMargin-20) > 1e-9 {
		t.Errorf("Expected margin 20%%, got %f", res.EBITDAMargin)
	}
}
