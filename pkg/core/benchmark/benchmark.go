// Package benchmark holds the static per-market, per-industry reference figures the
// calculators score against. The table is built once and never mutated; lookups return
// profiles by value.
package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"alight_calculator/pkg/core/utils"
)

const (
	DefaultMarket   = "US"
	DefaultIndustry = "real-estate"
)

// IndustryData are the sector figures for one market.
type IndustryData struct {
	AvgGrowth       float64 `json:"avgGrowth"`
	GoodGrowth      float64 `json:"goodGrowth"`
	ExcellentGrowth float64 `json:"excellentGrowth"`
	AvgMultiple     float64 `json:"avgMultiple"`
	GoodMultiple    float64 `json:"goodMultiple"`
	AvgMargin       float64 `json:"avgMargin"`
	Context         string  `json:"context"`
}

// Market groups the market-wide figures with its industries.
type Market struct {
	Code         string                  `json:"code"`
	Name         string                  `json:"name"`
	Currency     string                  `json:"currency"`
	AvgInflation float64                 `json:"avgInflation"`
	PeIRR        float64                 `json:"peIRR"`
	PeMOIC       float64                 `json:"peMOIC"`
	Industries   map[string]IndustryData `json:"industries"`
}

// Profile is the flattened (market, industry) record handed to the calculators.
type Profile struct {
	Market       string  `json:"market"`
	MarketName   string  `json:"marketName"`
	Currency     string  `json:"currency"`
	Industry     string  `json:"industry"`
	IndustryName string  `json:"industryName"`
	AvgInflation float64 `json:"avgInflation"`
	PeIRR        float64 `json:"peIRR"`
	PeMOIC       float64 `json:"peMOIC"`
	IndustryData
}

// Option is a code/label pair for selectors.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Store is an immutable benchmark table.
type Store struct {
	markets map[string]Market
	order   []string
}

var defaultStore = mustNewStore(builtinMarkets, marketOrder)

// Default returns the built-in table.
func Default() *Store {
	return defaultStore
}

// Lookup resolves against the built-in table.
func Lookup(market, industry string) Profile {
	return defaultStore.Lookup(market, industry)
}

// NewStore copies markets into a new store after checking the growth ordering of every industry.
func NewStore(markets map[string]Market, order []string) (*Store, error) {
	if _, ok := markets[DefaultMarket]; !ok {
		return nil, fmt.Errorf("benchmark table has no default market %q", DefaultMarket)
	}
	s := &Store{markets: make(map[string]Market, len(markets))}
	for code, m := range markets {
		if _, ok := m.Industries[DefaultIndustry]; !ok {
			return nil, fmt.Errorf("market %s has no default industry %q", code, DefaultIndustry)
		}
		if m.AvgInflation <= -100 {
			return nil, fmt.Errorf("market %s avgInflation %.2f is -100%% or lower", code, m.AvgInflation)
		}
		inds := make(map[string]IndustryData, len(m.Industries))
		for ind, d := range m.Industries {
			if err := d.validate(); err != nil {
				return nil, fmt.Errorf("market %s industry %s: %w", code, ind, err)
			}
			inds[ind] = d
		}
		m.Code = code
		m.Industries = inds
		s.markets[code] = m
	}

	seen := make(map[string]bool, len(order))
	for _, code := range order {
		if _, ok := s.markets[code]; ok && !seen[code] {
			s.order = append(s.order, code)
			seen[code] = true
		}
	}
	var rest []string
	for code := range s.markets {
		if !seen[code] {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	s.order = append(s.order, rest...)
	return s, nil
}

func mustNewStore(markets map[string]Market, order []string) *Store {
	s, err := NewStore(markets, order)
	if err != nil {
		panic(err)
	}
	return s
}

func (d IndustryData) validate() error {
	if d.AvgGrowth < 0 {
		return fmt.Errorf("avgGrowth %.2f is negative", d.AvgGrowth)
	}
	if d.GoodGrowth < d.AvgGrowth {
		return fmt.Errorf("goodGrowth %.2f below avgGrowth %.2f", d.GoodGrowth, d.AvgGrowth)
	}
	if d.ExcellentGrowth < d.GoodGrowth {
		return fmt.Errorf("excellentGrowth %.2f below goodGrowth %.2f", d.ExcellentGrowth, d.GoodGrowth)
	}
	return nil
}

// Lookup returns the profile for (market, industry). Unknown markets fall back to US and
// unknown industries to real estate; it never fails.
func (s *Store) Lookup(market, industry string) Profile {
	m, ok := s.markets[market]
	if !ok {
		m = s.markets[DefaultMarket]
	}
	code := industry
	data, ok := m.Industries[industry]
	if !ok {
		code = DefaultIndustry
		data = m.Industries[DefaultIndustry]
	}
	return Profile{
		Market:       m.Code,
		MarketName:   m.Name,
		Currency:     m.Currency,
		Industry:     code,
		IndustryName: IndustryLabel(industry),
		AvgInflation: m.AvgInflation,
		PeIRR:        m.PeIRR,
		PeMOIC:       m.PeMOIC,
		IndustryData: data,
	}
}

// Currency returns the market currency code, falling back to the default market.
func (s *Store) Currency(market string) string {
	if m, ok := s.markets[market]; ok {
		return m.Currency
	}
	return s.markets[DefaultMarket].Currency
}

// Markets lists the supported markets in display order.
func (s *Store) Markets() []Option {
	out := make([]Option, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, Option{Code: code, Label: s.markets[code].Name})
	}
	return out
}

// Industries lists the known industry selectors.
func Industries() []Option {
	out := make([]Option, len(industryLabels))
	copy(out, industryLabels)
	return out
}

// IndustryLabel returns the display label, or the code itself when unknown.
func IndustryLabel(code string) string {
	for _, o := range industryLabels {
		if o.Code == code {
			return o.Label
		}
	}
	return code
}

type industryOverride struct {
	AvgGrowth       *float64 `json:"avgGrowth"`
	GoodGrowth      *float64 `json:"goodGrowth"`
	ExcellentGrowth *float64 `json:"excellentGrowth"`
	AvgMultiple     *float64 `json:"avgMultiple"`
	GoodMultiple    *float64 `json:"goodMultiple"`
	AvgMargin       *float64 `json:"avgMargin"`
	Context         *string  `json:"context"`
}

type marketOverride struct {
	Name         *string                     `json:"name"`
	Currency     *string                     `json:"currency"`
	AvgInflation *float64                    `json:"avgInflation"`
	PeIRR        *float64                    `json:"peIRR"`
	PeMOIC       *float64                    `json:"peMOIC"`
	Industries   map[string]industryOverride `json:"industries"`
}

// LoadOverrides reads an Hjson file of partial market/industry figures and layers it over
// the built-in table. New markets must carry a real-estate entry.
func LoadOverrides(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark overrides: %w", err)
	}
	return ParseOverrides(raw)
}

// ParseOverrides is LoadOverrides over an in-memory document.
func ParseOverrides(raw []byte) (*Store, error) {
	jsonText, err := utils.ParseHJSON(string(raw))
	if err != nil {
		return nil, err
	}
	var overrides map[string]marketOverride
	if err := json.Unmarshal([]byte(jsonText), &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode benchmark overrides: %w", err)
	}

	merged := make(map[string]Market, len(builtinMarkets)+len(overrides))
	for code, m := range builtinMarkets {
		inds := make(map[string]IndustryData, len(m.Industries))
		for k, v := range m.Industries {
			inds[k] = v
		}
		m.Industries = inds
		merged[code] = m
	}
	for code, o := range overrides {
		m, ok := merged[code]
		if !ok {
			m = Market{Code: code, Name: code, Industries: map[string]IndustryData{}}
		}
		setString(&m.Name, o.Name)
		setString(&m.Currency, o.Currency)
		setFloat(&m.AvgInflation, o.AvgInflation)
		setFloat(&m.PeIRR, o.PeIRR)
		setFloat(&m.PeMOIC, o.PeMOIC)
		for ind, io := range o.Industries {
			d := m.Industries[ind]
			setFloat(&d.AvgGrowth, io.AvgGrowth)
			setFloat(&d.GoodGrowth, io.GoodGrowth)
			setFloat(&d.ExcellentGrowth, io.ExcellentGrowth)
			setFloat(&d.AvgMultiple, io.AvgMultiple)
			setFloat(&d.GoodMultiple, io.GoodMultiple)
			setFloat(&d.AvgMargin, io.AvgMargin)
			setString(&d.Context, io.Context)
			m.Industries[ind] = d
		}
		merged[code] = m
	}
	return NewStore(merged, marketOrder)
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
