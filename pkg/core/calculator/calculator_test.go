package calculator

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alight_calculator/pkg/core/benchmark"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
	"alight_calculator/pkg/core/valuation"
)

const (
	industry = "real-estate"
	country  = "US"
)

func newEngine() *Engine { return NewEngine(nil) }

func TestFutureValue(t *testing.T) {
	res, err := newEngine().FutureValue(FutureValueInput{CurrentValue: 500000, GrowthRate: 5, Years: 10}, industry, country)
	require.NoError(t, err)

	assert.InDelta(t, 814447.3, res.FutureValue, 0.1)
	assert.InDelta(t, 314447.3, res.TotalGrowth, 0.1)
	assert.InDelta(t, 62.89, res.PercentGrowth, 0.01)

	// 5/4.2 => +1, risk 0.52 => 0, ten years => 0
	assert.Equal(t, 6, res.QualityScore)
	assert.Equal(t, "ON PACE", res.Decision.Label)
	assert.Equal(t, scenario.Base, res.Scenario)
	assert.Contains(t, res.Analysis, "5.0% growth is at the United States average (4.2%). Top companies grow 8%.")
}

func TestFutureValue_Validation(t *testing.T) {
	e := newEngine()
	tests := []struct {
		name  string
		in    FutureValueInput
		field string
	}{
		{"zero value", FutureValueInput{CurrentValue: 0, GrowthRate: 5, Years: 10}, "currentValue"},
		{"zero years", FutureValueInput{CurrentValue: 100, GrowthRate: 5, Years: 0}, "years"},
		{"total loss", FutureValueInput{CurrentValue: 100, GrowthRate: -100, Years: 3}, "growthRate"},
		{"too many years", FutureValueInput{CurrentValue: 100, GrowthRate: 5, Years: MaxYears + 1}, "years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.FutureValue(tt.in, industry, country)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, FutureValue, ve.Calculator)
		})
	}
}

func TestDealROI(t *testing.T) {
	res, err := newEngine().DealROI(DealInput{PurchasePrice: 50_000_000, EBITDA: 6_250_000, ExitYears: 5, ExitMultiple: 10}, industry, country)
	require.NoError(t, err)

	assert.Equal(t, 62_500_000.0, res.ExitValue)
	assert.InDelta(t, 1.875, res.MOIC, 1e-9)
	assert.InDelta(t, 87.5, res.CashReturn, 1e-9)
	assert.Equal(t, 8.0, res.PaybackPeriod)
	assert.Len(t, res.CashFlows, 6)
	assert.InDelta(t, 16.13, res.IRR, 0.01)
	assert.Less(t, math.Abs(valuation.NPV(res.IRR/100, res.CashFlows)), valuation.IRRTolerance)

	// IRR 0.81 of hurdle, MOIC below 0.8x hurdle, 8y payback
	assert.Equal(t, 2, res.QualityScore)
	assert.Equal(t, scoring.Decision{Label: "PASS", Type: scoring.DecisionPass, Description: "Below threshold"}, res.Decision)
	assert.Contains(t, res.Analysis, "This deal is weak.")
}

func TestDealROI_Validation(t *testing.T) {
	e := newEngine()
	bad := []DealInput{
		{PurchasePrice: 0, EBITDA: 1, ExitYears: 1, ExitMultiple: 1},
		{PurchasePrice: 1, EBITDA: -1, ExitYears: 1, ExitMultiple: 1},
		{PurchasePrice: 1, EBITDA: 1, ExitYears: 0, ExitMultiple: 1},
		{PurchasePrice: 1, EBITDA: 1, ExitYears: 1, ExitMultiple: 0},
		{PurchasePrice: 1e6, EBITDA: 1e5, ExitYears: 2_000_000, ExitMultiple: 8},
	}
	for _, in := range bad {
		_, err := e.DealROI(in, industry, country)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}

func TestBreakeven(t *testing.T) {
	res, err := newEngine().Breakeven(BreakevenInput{FixedCosts: 100000, PricePerUnit: 50, CostPerUnit: 20}, industry, country)
	require.NoError(t, err)

	assert.Equal(t, 3334.0, res.BreakevenUnits)
	assert.Equal(t, 166700.0, res.BreakevenRevenue)
	assert.InDelta(t, 60, res.ProfitMargin, 1e-9)
	assert.Equal(t, 9, res.QualityScore)
	assert.Equal(t, "GO", res.Decision.Label)
	assert.Contains(t, res.Analysis, "Each unit sold contributes $30 toward covering your $100,000 monthly overhead. At 3,334 units")
}

func TestBreakeven_PriceMustExceedCost(t *testing.T) {
	_, err := newEngine().Breakeven(BreakevenInput{FixedCosts: 100000, PricePerUnit: 20, CostPerUnit: 20}, industry, country)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "pricePerUnit", ve.Field)

	_, err = newEngine().Breakeven(BreakevenInput{FixedCosts: 100000, PricePerUnit: 20, CostPerUnit: -1}, industry, country)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValuation(t *testing.T) {
	res, err := newEngine().Valuation(ValuationInput{Revenue: 10_000_000, EBITDA: 2_000_000}, industry, country)
	require.NoError(t, err)

	assert.Equal(t, 30_000_000.0, res.Mid)
	assert.InDelta(t, 22_500_000, res.Low, 1e-6)
	assert.InDelta(t, 40_500_000, res.High, 1e-6)
	assert.InDelta(t, 3.0, res.EVRevenue, 1e-9)
	assert.Equal(t, 5, res.QualityScore)
	assert.Equal(t, "FAIR VALUE", res.Decision.Label)
	assert.Contains(t, res.Analysis, "below average for United States Real Estate (they do 25%). Worth about $30,000,000")

	_, err = newEngine().Valuation(ValuationInput{Revenue: 1, EBITDA: 2}, industry, country)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPayback(t *testing.T) {
	res, err := newEngine().Payback(PaybackInput{InvestmentCost: 2_000_000, AnnualSavings: 600_000}, industry, country)
	require.NoError(t, err)

	assert.InDelta(t, 3.333, res.PaybackYears, 0.001)
	assert.InDelta(t, 30, res.ROI, 1e-9)
	assert.Equal(t, 2.8, res.InflationRate)
	assert.Equal(t, -200_000.0, res.Year3Profit)
	assert.Equal(t, 1_000_000.0, res.Year5Profit)
	assert.Equal(t, "average", res.Recommendation.Level)
	assert.Less(t, res.RealCumulativeSavings, res.NominalTotal)

	// ROI 1.2x of 25% => +2, payback 3.3y => neutral risk and time
	assert.Equal(t, 7, res.QualityScore)
	assert.Equal(t, "QUICK WIN", res.Decision.Label)
	assert.Contains(t, res.Analysis, "Payback in 3.3 years. After inflation (2.8%)")
}

func TestDealROI_MaxYears(t *testing.T) {
	_, err := newEngine().DealROI(DealInput{PurchasePrice: 1e6, EBITDA: 1e5, ExitYears: MaxYears, ExitMultiple: 8}, industry, country)
	require.NoError(t, err)

	_, err = newEngine().DealROI(DealInput{PurchasePrice: 1e6, EBITDA: 1e5, ExitYears: MaxYears + 1, ExitMultiple: 8}, industry, country)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "exitYears", ve.Field)
}

func TestPayback_HorizonBound(t *testing.T) {
	e := newEngine()

	_, err := e.Payback(PaybackInput{InvestmentCost: 1e12, AnnualSavings: 1}, industry, country)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "annualSavings", ve.Field)

	res, err := e.Payback(PaybackInput{InvestmentCost: 100 * MaxYears, AnnualSavings: 100}, industry, country)
	require.NoError(t, err)
	assert.InDelta(t, float64(MaxYears), res.PaybackYears, 1e-9)
}

func TestZeroBenchmarksScoreAsZero(t *testing.T) {
	store, err := benchmark.ParseOverrides([]byte(`{
  US: {
    peIRR: 0
    industries: { real-estate: { avgGrowth: 0, avgMargin: 0 } }
  }
}`))
	require.NoError(t, err)
	e := NewEngine(store)

	results := []Result{}
	fv, err := e.FutureValue(FutureValueInput{CurrentValue: 1000, GrowthRate: 5, Years: 3}, industry, country)
	require.NoError(t, err)
	results = append(results, fv)
	deal, err := e.DealROI(DealInput{PurchasePrice: 100, EBITDA: 10, ExitYears: 5, ExitMultiple: 8}, industry, country)
	require.NoError(t, err)
	results = append(results, deal)
	be, err := e.Breakeven(BreakevenInput{FixedCosts: 100000, PricePerUnit: 50, CostPerUnit: 20}, industry, country)
	require.NoError(t, err)
	results = append(results, be)
	val, err := e.Valuation(ValuationInput{Revenue: 1000, EBITDA: 200}, industry, country)
	require.NoError(t, err)
	results = append(results, val)

	for _, res := range results {
		a := res.Summary()
		assert.Equal(t, 0.0, a.Metrics.PerformanceVsBenchmark, res.Kind())
		_, err := json.Marshal(res)
		assert.NoError(t, err, res.Kind())
	}
}

func TestPaybackLabel(t *testing.T) {
	assert.Equal(t, "9.0 months", PaybackLabel(0.75))
	assert.Equal(t, "3.3 years", PaybackLabel(10.0/3.0))
}

func TestUnknownMarketFallsBack(t *testing.T) {
	res, err := newEngine().Payback(PaybackInput{InvestmentCost: 1000, AnnualSavings: 500}, "space-mining", "ZZ")
	require.NoError(t, err)
	assert.Equal(t, "US", res.Benchmark.Market)
	assert.Equal(t, 2.8, res.InflationRate)
}

func TestDealSession_ScenarioRoundTrip(t *testing.T) {
	e := newEngine()
	in := DealInput{PurchasePrice: 50_000_000, EBITDA: 6_250_000, ExitYears: 5, ExitMultiple: 10}
	s, err := e.NewDealSession(in, industry, country)
	require.NoError(t, err)

	base, err := e.DealROI(in, industry, country)
	require.NoError(t, err)

	r, err := s.Switch(scenario.Bull)
	require.NoError(t, err)
	bull := r.(*DealResult)
	assert.InDelta(t, 13, float64(bull.Input.ExitMultiple), 1e-9)
	assert.InDelta(t, 7_187_500, float64(bull.Input.EBITDA), 1e-6)
	assert.Equal(t, scenario.Bull, bull.Scenario)
	assert.Greater(t, bull.IRR, base.IRR)

	r, err = s.Switch(scenario.Bear)
	require.NoError(t, err)
	bear := r.(*DealResult)
	assert.InDelta(t, 7.5, float64(bear.Input.ExitMultiple), 1e-9)
	assert.InDelta(t, 5_312_500, float64(bear.Input.EBITDA), 1e-6)
	assert.Less(t, bear.IRR, base.IRR)

	r, err = s.Reset()
	require.NoError(t, err)
	restored := r.(*DealResult)
	assert.Equal(t, in, restored.Input)
	assert.Equal(t, base.IRR, restored.IRR)
	assert.Equal(t, scenario.Base, s.Scenario())
}

func TestFutureValueSession(t *testing.T) {
	s, err := newEngine().NewFutureValueSession(FutureValueInput{CurrentValue: 1000, GrowthRate: 10, Years: 5}, industry, country)
	require.NoError(t, err)
	assert.Equal(t, FutureValue, s.Kind())

	r, err := s.Switch(scenario.Bear)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, float64(r.(*FutureValueResult).Input.GrowthRate), 1e-9)

	again, err := s.Calculate()
	require.NoError(t, err)
	assert.Equal(t, scenario.Bear, again.Summary().Scenario)
	assert.InDelta(t, 7.5, s.Values().Primary, 1e-9)
}

func TestEngineRun(t *testing.T) {
	e := newEngine()

	res, err := e.Run(DealROI, Request{
		Inputs:   json.RawMessage(`{"purchasePrice":"50,000,000","ebitda":"$6,250,000","exitYears":"5","exitMultiple":"10"}`),
		Industry: industry,
		Country:  country,
		Scenario: "bull",
	})
	require.NoError(t, err)
	assert.Equal(t, DealROI, res.Kind())
	assert.Equal(t, scenario.Bull, res.Summary().Scenario)

	_, err = e.Run(Breakeven, Request{
		Inputs:   json.RawMessage(`{"fixedCosts":100000,"pricePerUnit":50,"costPerUnit":20}`),
		Scenario: "bear",
	})
	assert.ErrorIs(t, err, ErrNoScenarios)

	_, err = e.Run(Payback, Request{Inputs: json.RawMessage(`{"investmentCost":"abc","annualSavings":"1"}`)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Run(Valuation, Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Run(Kind("mortgage"), Request{Inputs: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrUnknownCalculator)

	_, err = e.Run(FutureValue, Request{Inputs: json.RawMessage(`{}`), Scenario: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngineNewSession(t *testing.T) {
	e := newEngine()

	s, err := e.NewSession(FutureValue, Request{
		Inputs:   json.RawMessage(`{"currentValue":"500,000","growthRate":"10","years":"10"}`),
		Industry: industry,
		Country:  country,
	})
	require.NoError(t, err)
	r, err := s.Switch(scenario.Bull)
	require.NoError(t, err)
	assert.Equal(t, scenario.Bull, r.Summary().Scenario)

	_, err = e.NewSession(Payback, Request{Inputs: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrNoScenarios)

	_, err = e.NewSession(Kind("mortgage"), Request{Inputs: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrUnknownCalculator)

	_, err = e.NewSession(DealROI, Request{Inputs: json.RawMessage(`{"purchasePrice":0}`)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("deal-roi")
	require.NoError(t, err)
	assert.Equal(t, DealROI, k)

	k, err = ParseKind("Future Value")
	require.NoError(t, err)
	assert.Equal(t, FutureValue, k)

	_, err = ParseKind("Mortgage")
	assert.ErrorIs(t, err, ErrUnknownCalculator)

	assert.True(t, DealROI.SupportsScenarios())
	assert.False(t, Payback.SupportsScenarios())
	assert.Equal(t, scoring.ContextDeal, Breakeven.Context())
}

func TestNewPayload(t *testing.T) {
	res, err := newEngine().DealROI(DealInput{PurchasePrice: 100, EBITDA: 10, ExitYears: 5, ExitMultiple: 8}, industry, country)
	require.NoError(t, err)

	p := NewPayload(res)
	assert.Equal(t, "Deal ROI", p.CalculatorType)
	assert.Equal(t, "US", p.Country)
	assert.Equal(t, "real-estate", p.Industry)
	assert.Equal(t, 100.0, p.Inputs["purchasePrice"])
	assert.Equal(t, res.IRR, p.Results["irr"])
	assert.Equal(t, res.QualityScore, p.Results["qualityScore"])

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"calculatorType":"Deal ROI"`)
	assert.NotContains(t, string(b), "detailedMemo")
}

func TestMemoFields(t *testing.T) {
	res, err := newEngine().Breakeven(BreakevenInput{FixedCosts: 100000, PricePerUnit: 50, CostPerUnit: 20}, industry, country)
	require.NoError(t, err)

	results := res.MemoResults()
	require.Len(t, results, 4)
	assert.Equal(t, "Breakeven Units", results[0].Label)
	assert.Equal(t, "3,334", results[0].Value)
	require.NotNil(t, results[0].Amount)
	assert.Equal(t, 3334.0, *results[0].Amount)
	assert.Equal(t, "$166,700", results[1].Value)
	assert.Equal(t, "$50.00", res.MemoInputs()[1].Value)
}
