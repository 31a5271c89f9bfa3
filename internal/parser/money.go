package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyPattern finds the first number-like run in a noisy cell, e.g.
// "12,50" inside "R$ 12,50 cada".
var moneyPattern = regexp.MustCompile(`[0-9]+[.,]?[0-9]*`)

// ParseMoney converts a cell that may be BR-formatted ("1.234,56", "R$ 99,90")
// or already plain ("1234.56") into an exact decimal. The second return is
// false for empty or unparseable input; callers treat that as "row excluded",
// never as a fatal error.
func ParseMoney(text string) (decimal.Decimal, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return decimal.Decimal{}, false
	}

	// Plain numeric cells pass through untouched.
	if d, err := decimal.NewFromString(t); err == nil {
		return d, true
	}

	if d, err := decimal.NewFromString(normalizeBRNumber(t)); err == nil {
		return d, true
	}

	// Last tier: pull the first number-like run out and normalize it the
	// same way.
	if m := moneyPattern.FindString(t); m != "" {
		if d, err := decimal.NewFromString(normalizeBRNumber(m)); err == nil {
			return d, true
		}
	}

	return decimal.Decimal{}, false
}

// normalizeBRNumber strips the currency symbol and spaces, drops "." used as
// thousands separator and turns the "," decimal separator into ".".
func normalizeBRNumber(s string) string {
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return s
}
