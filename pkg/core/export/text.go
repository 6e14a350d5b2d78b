package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"alight_calculator/pkg/core/calculator"
)

const rule = "----------------------------------------"

// RenderText writes the memo as plain text.
func RenderText(w io.Writer, m Memo) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "INVESTMENT MEMO: %s\n", strings.ToUpper(m.Type))
	fmt.Fprintf(bw, "%s | %s | %s scenario\n", m.Country, m.Industry, m.Scenario)
	fmt.Fprintf(bw, "Generated %s\n\n", m.GeneratedAt.Format("January 2, 2006 15:04 MST"))

	fmt.Fprintf(bw, "DECISION: %s (%d/10)\n", m.Decision.Label, m.QualityScore)
	fmt.Fprintf(bw, "%s\n\n", m.Decision.Description)

	writeSection(bw, "INPUTS", m.Inputs)
	writeSection(bw, "RESULTS", m.Results)

	fmt.Fprintf(bw, "ANALYSIS\n%s\n%s\n", rule, m.Analysis)
	if m.Narrative != "" {
		fmt.Fprintf(bw, "\nMARKET ANALYSIS\n%s\n%s\n", rule, m.Narrative)
	}
	return bw.Flush()
}

func writeSection(w io.Writer, title string, fields []calculator.Field) {
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	fmt.Fprintf(w, "%s\n%s\n", title, rule)
	for _, f := range fields {
		fmt.Fprintf(w, "%-*s  %s\n", width, f.Label, f.Value)
	}
	fmt.Fprintln(w)
}
