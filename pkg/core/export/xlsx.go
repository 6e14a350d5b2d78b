package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"alight_calculator/pkg/core/calculator"
)

const memoSheet = "Memo"

// RenderXLSX builds a one-sheet workbook. Numeric fields are written as numbers.
func RenderXLSX(m Memo) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", memoSheet); err != nil {
		return nil, err
	}

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	row := 1
	set := func(label string, value interface{}) error {
		a, _ := excelize.CoordinatesToCellName(1, row)
		b, _ := excelize.CoordinatesToCellName(2, row)
		if err := wb.SetCellValue(memoSheet, a, label); err != nil {
			return err
		}
		if value != nil {
			if err := wb.SetCellValue(memoSheet, b, value); err != nil {
				return err
			}
		}
		row++
		return nil
	}
	heading := func(title string) error {
		row++
		a, _ := excelize.CoordinatesToCellName(1, row)
		if err := wb.SetCellValue(memoSheet, a, title); err != nil {
			return err
		}
		if err := wb.SetCellStyle(memoSheet, a, a, bold); err != nil {
			return err
		}
		row++
		return nil
	}
	fields := func(fs []calculator.Field) error {
		for _, f := range fs {
			var v interface{} = f.Value
			if f.Amount != nil {
				v = *f.Amount
			}
			if err := set(f.Label, v); err != nil {
				return err
			}
		}
		return nil
	}

	steps := []func() error{
		func() error { return set("Calculator", m.Type) },
		func() error { return set("Market", m.Country) },
		func() error { return set("Industry", m.Industry) },
		func() error { return set("Currency", m.Currency) },
		func() error { return set("Scenario", string(m.Scenario)) },
		func() error { return set("Generated", m.GeneratedAt.Format("2006-01-02 15:04:05")) },
		func() error { return set("Quality Score", m.QualityScore) },
		func() error { return set("Decision", m.Decision.Label) },
		func() error { return heading("Inputs") },
		func() error { return fields(m.Inputs) },
		func() error { return heading("Results") },
		func() error { return fields(m.Results) },
		func() error { return heading("Analysis") },
		func() error { return set(m.Analysis, nil) },
	}
	if m.Narrative != "" {
		steps = append(steps,
			func() error { return heading("Market Analysis") },
			func() error { return set(m.Narrative, nil) },
		)
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, fmt.Errorf("write memo sheet: %w", err)
		}
	}

	if err := wb.SetColWidth(memoSheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := wb.SetColWidth(memoSheet, "B", "B", 24); err != nil {
		return nil, err
	}
	return wb, nil
}

// WriteXLSX renders m and writes the workbook to w.
func WriteXLSX(w io.Writer, m Memo) error {
	wb, err := RenderXLSX(m)
	if err != nil {
		return err
	}
	defer wb.Close()

	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
