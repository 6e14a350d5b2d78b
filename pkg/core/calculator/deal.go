package calculator

import (
	"fmt"

	"alight_calculator/pkg/core/money"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
	"alight_calculator/pkg/core/valuation"
)

// DealInput
type DealInput struct {
	PurchasePrice Amount `json:"purchasePrice"`
	EBITDA        Amount `json:"ebitda"`
	ExitYears     Count  `json:"exitYears"`
	ExitMultiple  Amount `json:"exitMultiple"`
}

func (in DealInput) Validate() error {
	switch {
	case in.PurchasePrice <= 0:
		return invalid(DealROI, "purchasePrice", "must be positive")
	case in.EBITDA <= 0:
		return invalid(DealROI, "ebitda", "must be positive")
	case in.ExitYears <= 0:
		return invalid(DealROI, "exitYears", "must be a positive whole number")
	case in.ExitYears > MaxYears:
		return invalid(DealROI, "exitYears", fmt.Sprintf("cannot exceed %d years", MaxYears))
	case in.ExitMultiple <= 0:
		return invalid(DealROI, "exitMultiple", "must be positive")
	}
	return nil
}

// DealResult
type DealResult struct {
	Assessment
	Input         DealInput `json:"input"`
	CashFlows     []float64 `json:"cashFlows"`
	IRR           float64   `json:"irr"`
	MOIC          float64   `json:"moic"`
	ExitValue     float64   `json:"exitValue"`
	CashReturn    float64   `json:"cashReturn"`
	PaybackPeriod float64   `json:"paybackPeriod"`
}

// DealROI calculates the base case.
func (e *Engine) DealROI(in DealInput, industry, country string) (*DealResult, error) {
	return e.dealROI(in, industry, country, scenario.Base)
}

func (e *Engine) dealROI(in DealInput, industry, country string, sc scenario.Kind) (*DealResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	d := valuation.AnalyzeDeal(valuation.DealInput{
		PurchasePrice: float64(in.PurchasePrice),
		AnnualEBITDA:  float64(in.EBITDA),
		HoldingYears:  int(in.ExitYears),
		ExitMultiple:  float64(in.ExitMultiple),
	})
	ind := e.store.Lookup(country, industry)

	risk := 0.2
	switch {
	case d.MOIC >= ind.PeMOIC:
		risk = 0.8
	case d.MOIC >= ind.PeMOIC*0.8:
		risk = 0.5
	}
	m := scoring.Metrics{
		PerformanceVsBenchmark: ratio(d.IRR, ind.PeIRR),
		RiskAdjusted:           risk,
		TimeEfficiency:         tier(d.PaybackPeriod, []float64{3, 5}, []float64{0.9, 0.5}, 0.2),
	}

	res := &DealResult{
		Assessment:    assess(DealROI, m, ind, sc),
		Input:         in,
		CashFlows:     d.CashFlows,
		IRR:           d.IRR,
		MOIC:          d.MOIC,
		ExitValue:     d.ExitValue,
		CashReturn:    d.CashReturn,
		PaybackPeriod: d.PaybackPeriod,
	}

	cur := ind.Currency
	switch {
	case d.IRR >= ind.PeIRR+5 && d.MOIC >= ind.PeMOIC+0.5:
		res.Analysis = fmt.Sprintf("This is a great deal. Every year you make %s%% on your money (true IRR including %s/yr cash flow). Put in %s, walk away with %s total. Most people in %s want %s%%, so you're beating the bar. %s",
			fixed(d.IRR, 1), money.Format(float64(in.EBITDA), cur), money.Format(100, cur), money.Format(d.MOIC*100, cur), ind.MarketName, num(ind.PeIRR), ind.Context)
	case d.IRR >= ind.PeIRR:
		res.Analysis = fmt.Sprintf("This deal is solid. You make %s%% per year (IRR), hitting the %s%% target. Total return of %sx your money including annual cash flows. Takes about %s years to break even on operations alone. %s",
			fixed(d.IRR, 1), num(ind.PeIRR), fixed(d.MOIC, 1), fixed(d.PaybackPeriod, 1), ind.Context)
	case d.IRR >= ind.PeIRR-5:
		res.Analysis = fmt.Sprintf("This deal is weak. You only make %s%% per year when you should be making at least %s%%. Total return is %sx. Takes %s years to break even. %s",
			fixed(d.IRR, 1), num(ind.PeIRR), fixed(d.MOIC, 1), fixed(d.PaybackPeriod, 1), ind.Context)
	default:
		res.Analysis = fmt.Sprintf("Skip this deal. You're only making %s%% per year when %s%% is the minimum. Total return of just %sx doesn't justify the risk. %s",
			fixed(d.IRR, 1), num(ind.PeIRR), fixed(d.MOIC, 1), ind.Context)
	}
	return res, nil
}

func (r *DealResult) Kind() Kind { return DealROI }
func (r *DealResult) sealed()    {}

func (r *DealResult) PayloadInputs() map[string]any {
	return map[string]any{
		"purchasePrice": float64(r.Input.PurchasePrice),
		"ebitda":        float64(r.Input.EBITDA),
		"exitYears":     int(r.Input.ExitYears),
		"exitMultiple":  float64(r.Input.ExitMultiple),
	}
}

func (r *DealResult) PayloadResults() map[string]any {
	return map[string]any{
		"irr":           r.IRR,
		"moic":          r.MOIC,
		"exitValue":     r.ExitValue,
		"cashReturn":    r.CashReturn,
		"paybackPeriod": r.PaybackPeriod,
		"qualityScore":  r.QualityScore,
	}
}

func (r *DealResult) MemoInputs() []Field {
	cur := r.Benchmark.Currency
	return []Field{
		amountField("Purchase Price", money.Format(float64(r.Input.PurchasePrice), cur), float64(r.Input.PurchasePrice)),
		amountField("EBITDA", money.Format(float64(r.Input.EBITDA), cur), float64(r.Input.EBITDA)),
		amountField("Exit Years", r.Input.ExitYears.String(), float64(r.Input.ExitYears)),
		amountField("Exit Multiple", fixed(float64(r.Input.ExitMultiple), 1)+"x", float64(r.Input.ExitMultiple)),
	}
}

func (r *DealResult) MemoResults() []Field {
	return []Field{
		amountField("IRR (True)", fixed(r.IRR, 1)+"%", r.IRR),
		amountField("MOIC (incl. cash flows)", fixed(r.MOIC, 2)+"x", r.MOIC),
		amountField("Exit Value", money.Format(r.ExitValue, r.Benchmark.Currency), r.ExitValue),
		amountField("Cash Return", fixed(r.CashReturn, 1)+"%", r.CashReturn),
	}
}
