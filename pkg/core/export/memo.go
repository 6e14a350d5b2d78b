// Package export renders a calculator result and its narrative as an investment memo, either
// as plain text or as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/money"
	"alight_calculator/pkg/core/scenario"
	"alight_calculator/pkg/core/scoring"
)

// Format is an export output format.
type Format string

const (
	FormatText Format = "text"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "text" (or "txt") and "xlsx".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "txt":
		return FormatText, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/plain; charset=utf-8"
}

func (f Format) Extension() string {
	if f == FormatXLSX {
		return ".xlsx"
	}
	return ".txt"
}

// Memo is the export record of one calculation.
type Memo struct {
	Type         string             `json:"type"`
	Calculator   calculator.Kind    `json:"calculator"`
	Inputs       []calculator.Field `json:"inputs"`
	Results      []calculator.Field `json:"results"`
	QualityScore int                `json:"qualityScore"`
	Decision     scoring.Decision   `json:"decision"`
	Analysis     string             `json:"analysis"`
	Narrative    string             `json:"narrative,omitempty"`
	Industry     string             `json:"industry"`
	Country      string             `json:"country"`
	Currency     string             `json:"currency"`
	Scenario     scenario.Kind      `json:"scenario"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}

// FromResult builds the memo for r. narrative is the AI memo analysis and may be empty.
func FromResult(r calculator.Result, narrative string, now time.Time) Memo {
	a := r.Summary()
	return Memo{
		Type:         r.Kind().DisplayName(),
		Calculator:   r.Kind(),
		Inputs:       r.MemoInputs(),
		Results:      r.MemoResults(),
		QualityScore: a.QualityScore,
		Decision:     a.Decision,
		Analysis:     a.Analysis,
		Narrative:    narrative,
		Industry:     a.Benchmark.IndustryName,
		Country:      a.Benchmark.MarketName,
		Currency:     a.Benchmark.Currency,
		Scenario:     a.Scenario,
		GeneratedAt:  now.UTC(),
	}
}

// Filename is a download name such as "alight-deal-roi-20260307.xlsx".
func (m Memo) Filename(f Format) string {
	return "alight-" + string(m.Calculator) + "-" + m.GeneratedAt.Format("20060102") + f.Extension()
}

// Headline is the one-line result stored with a saved deal.
func Headline(r calculator.Result) string {
	cur := r.Summary().Benchmark.Currency
	switch res := r.(type) {
	case *calculator.FutureValueResult:
		return money.Format(res.FutureValue, cur)
	case *calculator.DealResult:
		return fmt.Sprintf("IRR: %s%% | MOIC: %sx", strconv.FormatFloat(res.IRR, 'f', 1, 64), strconv.FormatFloat(res.MOIC, 'f', 2, 64))
	case *calculator.BreakevenResult:
		return money.Number(res.BreakevenUnits, 0) + " units"
	case *calculator.ValuationResult:
		return money.Format(res.Mid, cur)
	case *calculator.PaybackResult:
		return strconv.FormatFloat(res.PaybackYears, 'f', 1, 64) + " yrs"
	}
	return ""
}

// Render writes m in format f.
func Render(w io.Writer, f Format, m Memo) error {
	switch f {
	case FormatText:
		return RenderText(w, m)
	case FormatXLSX:
		return WriteXLSX(w, m)
	}
	return fmt.Errorf("unsupported export format %q", f)
}
