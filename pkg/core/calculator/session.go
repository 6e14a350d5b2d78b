package calculator

import (
	"alight_calculator/pkg/core/scenario"
)

// Session holds one calculator's inputs across scenario switches. The first switch freezes
// the driving values; bull and bear always scale that frozen base.
type Session struct {
	kind     Kind
	adjuster *scenario.Adjuster
	current  scenario.Values
	active   scenario.Kind
	run      func(v scenario.Values, sc scenario.Kind) (Result, error)
}

// Kind is the calculator the session runs.
func (s *Session) Kind() Kind { return s.kind }

// Scenario is the scenario of the last calculation.
func (s *Session) Scenario() scenario.Kind { return s.active }

// Values are the driving values the last calculation used.
func (s *Session) Values() scenario.Values { return s.current }

// Calculate runs with the current values under the active scenario label.
func (s *Session) Calculate() (Result, error) {
	return s.run(s.current, s.active)
}

// Switch recalculates under scenario k.
func (s *Session) Switch(k scenario.Kind) (Result, error) {
	v := s.adjuster.Switch(k, s.current)
	s.current = v
	s.active = k
	return s.run(v, k)
}

// Reset restores the frozen base and recalculates.
func (s *Session) Reset() (Result, error) {
	return s.Switch(scenario.Base)
}

// NewFutureValueSession validates in and returns a session whose primary driver is the
// growth rate.
func (e *Engine) NewFutureValueSession(in FutureValueInput, industry, country string) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		kind:     FutureValue,
		adjuster: scenario.NewAdjuster(),
		current:  scenario.Values{Primary: float64(in.GrowthRate)},
		active:   scenario.Base,
		run: func(v scenario.Values, sc scenario.Kind) (Result, error) {
			adj := in
			adj.GrowthRate = Amount(v.Primary)
			return e.futureValue(adj, industry, country, sc)
		},
	}, nil
}

// NewDealSession validates in and returns a session driven by exit multiple (primary)
// and EBITDA (secondary).
func (e *Engine) NewDealSession(in DealInput, industry, country string) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		kind:     DealROI,
		adjuster: scenario.NewAdjuster(),
		current:  scenario.Values{Primary: float64(in.ExitMultiple), Secondary: float64(in.EBITDA)},
		active:   scenario.Base,
		run: func(v scenario.Values, sc scenario.Kind) (Result, error) {
			adj := in
			adj.ExitMultiple = Amount(v.Primary)
			adj.EBITDA = Amount(v.Secondary)
			return e.dealROI(adj, industry, country, sc)
		},
	}, nil
}
