package valuation

import (
	"math"
)

// BuildDealCashFlows lays out a hold-and-exit deal:
// [-purchasePrice, cf, cf, ..., cf + cf*exitMultiple], holdingYears+1 entries.
// holdingYears must already be validated as a positive integer.
func BuildDealCashFlows(purchasePrice, annualCashFlow float64, holdingYears int, exitMultiple float64) []float64 {
	flows := make([]float64, 0, holdingYears+1)
	flows = append(flows, -purchasePrice)
	for y := 1; y <= holdingYears; y++ {
		cf := annualCashFlow
		if y == holdingYears {
			cf += annualCashFlow * exitMultiple
		}
		flows = append(flows, cf)
	}
	return flows
}

// CalculateMOIC is total distributions over invested capital. Interim annual cash flows
// count toward distributions alongside the exit value.
func CalculateMOIC(purchasePrice, annualCashFlow float64, holdingYears int, exitValue float64) float64 {
	totalDistributions := annualCashFlow*float64(holdingYears) + exitValue
	return totalDistributions / purchasePrice
}

// CalculateCAGR is the compound annual growth rate between two values, in percent.
// It ignores interim cash flows, so it is not an IRR.
func CalculateCAGR(initial, final float64, years float64) float64 {
	if initial <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(final/initial, 1/years) - 1) * 100
}

// DealInput parameters for a hold-and-exit deal analysis
type DealInput struct {
	PurchasePrice float64
	AnnualEBITDA  float64 // treated as distributable cash flow
	HoldingYears  int
	ExitMultiple  float64 // EV / EBITDA at exit
}

// DealResult
type DealResult struct {
	CashFlows     []float64
	ExitValue     float64
	IRR           float64 // percent
	MOIC          float64
	CashReturn    float64 // total profit over purchase price, percent
	PaybackPeriod float64 // years of EBITDA to recover the purchase price
}

// AnalyzeDeal runs the full deal return set for a validated DealInput.
func AnalyzeDeal(input DealInput) DealResult {
	// 1. Exit proceeds
	exitValue := input.AnnualEBITDA * input.ExitMultiple

	// 2. Cash flow series and IRR
	flows := BuildDealCashFlows(input.PurchasePrice, input.AnnualEBITDA, input.HoldingYears, input.ExitMultiple)
	irr := CalculateIRR(flows)

	// 3. Multiples
	moic := CalculateMOIC(input.PurchasePrice, input.AnnualEBITDA, input.HoldingYears, exitValue)
	totalReturn := exitValue + input.AnnualEBITDA*float64(input.HoldingYears) - input.PurchasePrice

	return DealResult{
		CashFlows:     flows,
		ExitValue:     exitValue,
		IRR:           irr,
		MOIC:          moic,
		CashReturn:    totalReturn / input.PurchasePrice * 100,
		PaybackPeriod: input.PurchasePrice / input.AnnualEBITDA,
	}
}
