package calculator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// MaxYears bounds every horizon a calculator iterates over: holding periods, projection
// years and payback periods.
const MaxYears = 100

// Amount is a numeric form field. It decodes from a JSON number or from a string such as
// "50,000,000" or "$6,250,000". Anything unparsable becomes 0, which validation rejects.
type Amount float64

// Count is an integer form field (years). Strings parse their leading integer, so "5.7"
// and "5 years" are both 5.
type Count int

// ParseAmount strips thousands separators, currency symbols and whitespace.
func ParseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCount reads an optional sign and the leading run of digits.
func ParseCount(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(ParseAmount(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Count(ParseCount(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*c = Count(int(f))
	return nil
}

func (a Amount) String() string { return strconv.FormatFloat(float64(a), 'f', -1, 64) }

func (c Count) String() string { return strconv.Itoa(int(c)) }
