package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"alight_calculator/pkg/core/agent"
	"alight_calculator/pkg/core/benchmark"
	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/export"
	"alight_calculator/pkg/core/narrative"
	"alight_calculator/pkg/logger"
)

func main() {
	calcType := flag.String("type", "deal-roi", "Calculator: future-value, deal-roi, breakeven, valuation, payback")
	dataStr := flag.String("data", "", "JSON inputs, e.g. '{\"purchasePrice\":\"5,000,000\",...}'")
	industry := flag.String("industry", benchmark.DefaultIndustry, "Industry code")
	country := flag.String("country", benchmark.DefaultMarket, "Market code (US, PK, UK, AE)")
	scenarioName := flag.String("scenario", "base", "Scenario: base, bull, bear")
	format := flag.String("format", "json", "Output: json, text, xlsx")
	out := flag.String("out", "", "Output file (default stdout; required for xlsx)")
	withNarrative := flag.Bool("narrative", false, "Ask the configured LLM for the memo analysis")
	modelsPath := flag.String("models", "config/models.yaml", "Model config for -narrative")
	flag.Parse()

	if *dataStr == "" {
		fmt.Fprintln(os.Stderr, "Error: No data provided")
		os.Exit(1)
	}

	kind, err := calculator.ParseKind(*calcType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := calculator.NewEngine(nil).Run(kind, calculator.Request{
		Inputs:   json.RawMessage(*dataStr),
		Industry: *industry,
		Country:  *country,
		Scenario: *scenarioName,
	})
	if err != nil {
		var verr *calculator.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "Invalid input: %v\n", verr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	text := ""
	if *withNarrative {
		text = memoNarrative(res, *modelsPath)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(map[string]interface{}{
			"result":    res,
			"payload":   calculator.NewPayload(res),
			"headline":  export.Headline(res),
			"narrative": text,
		})
	default:
		var f export.Format
		f, err = export.ParseFormat(*format)
		if err == nil && f == export.FormatXLSX && *out == "" {
			err = fmt.Errorf("-out is required for xlsx")
		}
		if err == nil {
			err = export.Render(w, f, export.FromResult(res, text, time.Now()))
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// memoNarrative returns the memo analysis, or "" with a warning when no provider answers.
func memoNarrative(res calculator.Result, modelsPath string) string {
	log := logger.New(logger.Config{Level: "warn", Pretty: true, Output: os.Stderr})

	cfg, err := agent.LoadConfig(modelsPath)
	if err != nil {
		log.Warn().Err(err).Msg("model config unreadable, using defaults")
	}
	svc, err := narrative.NewService(agent.NewManager(cfg, nil, log), nil, log)
	if err != nil {
		log.Warn().Err(err).Msg("narrative unavailable")
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	p := calculator.NewPayload(res)
	p.DetailedMemo = true
	text, err := svc.Memo(ctx, p)
	if err != nil {
		log.Warn().Err(err).Msg("narrative skipped")
		return ""
	}
	return text
}
