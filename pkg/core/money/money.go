// Package money formats calculator amounts for display in the market's currency.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var symbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"PKR": "Rs ",
	"AED": "AED ",
}

// NotAvailable is rendered for infinite or NaN amounts (e.g. unreachable breakeven).
const NotAvailable = "N/A"

// Symbol returns the display prefix for an ISO currency code.
func Symbol(currency string) string {
	if s, ok := symbols[currency]; ok {
		return s
	}
	if currency == "" {
		return "$"
	}
	return currency + " "
}

// Format renders amount rounded to whole currency units with thousands separators,
// e.g. Format(1234567.8, "USD") == "$1,234,568".
func Format(amount float64, currency string) string {
	return FormatPlaces(amount, currency, 0)
}

// FormatPlaces is Format with a fixed number of decimal places.
func FormatPlaces(amount float64, currency string, places int32) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(amount).Round(places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + Symbol(currency) + Group(d.StringFixed(places))
}

// Number renders a plain grouped number with the given decimal places ("3,334").
func Number(v float64, places int32) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(v).Round(places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + Group(d.StringFixed(places))
}

// Group inserts thousands separators into the integer part of an unsigned decimal string.
func Group(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		if hasFrac {
			return intPart + "." + frac
		}
		return intPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
