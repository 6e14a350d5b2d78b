// Package scenario produces bull and bear variants of a calculator's driving inputs.
package scenario

import (
	"fmt"
	"sync"
)

// Kind names a scenario variant.
type Kind string

const (
	Base Kind = "base"
	Bull Kind = "bull"
	Bear Kind = "bear"
)

// Multipliers are applied to the primary and secondary driving variables.
type Multipliers struct {
	Primary   float64 `json:"primary"`
	Secondary float64 `json:"secondary"`
	Label     string  `json:"label"`
}

var table = map[Kind]Multipliers{
	Base: {Primary: 1.0, Secondary: 1.0, Label: "Base"},
	Bull: {Primary: 1.30, Secondary: 1.15, Label: "Bull +30%"},
	Bear: {Primary: 0.75, Secondary: 0.85, Label: "Bear -25%"},
}

// Kinds lists the scenarios in display order.
func Kinds() []Kind { return []Kind{Base, Bull, Bear} }

// Parse accepts "base", "bull" or "bear". The empty string is Base.
func Parse(s string) (Kind, error) {
	if s == "" {
		return Base, nil
	}
	k := Kind(s)
	if _, ok := table[k]; !ok {
		return "", fmt.Errorf("unknown scenario %q", s)
	}
	return k, nil
}

// For returns the multipliers for k; unknown kinds get Base.
func For(k Kind) Multipliers {
	if m, ok := table[k]; ok {
		return m
	}
	return table[Base]
}

// Values are the two driving inputs a scenario scales (e.g. exit multiple and EBITDA).
type Values struct {
	Primary   float64 `json:"primary"`
	Secondary float64 `json:"secondary"`
}

// Apply scales v by k's multipliers.
func Apply(k Kind, v Values) Values {
	m := For(k)
	return Values{
		Primary:   v.Primary * m.Primary,
		Secondary: v.Secondary * m.Secondary,
	}
}

// Adjuster remembers the base values captured on the first switch so later switches
// always scale from that frozen base instead of the currently displayed values.
type Adjuster struct {
	mu     sync.Mutex
	base   Values
	frozen bool
	active Kind
}

// NewAdjuster
func NewAdjuster() *Adjuster {
	return &Adjuster{active: Base}
}

// Switch returns the values to calculate with for scenario k. current is only read on the
// first switch after construction or Reset. Switching to Base restores the frozen values
// and clears the memo.
func (a *Adjuster) Switch(k Kind, current Values) Values {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.frozen {
		a.base = current
		a.frozen = true
	}
	base := a.base

	if k == Base {
		a.frozen = false
		a.base = Values{}
		a.active = Base
		return base
	}

	a.active = k
	return Apply(k, base)
}

// Reset drops any frozen base without producing values.
func (a *Adjuster) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frozen = false
	a.base = Values{}
	a.active = Base
}

// Frozen returns the captured base and whether one is held.
func (a *Adjuster) Frozen() (Values, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.base, a.frozen
}

// Active is the scenario most recently switched to.
func (a *Adjuster) Active() Kind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}
