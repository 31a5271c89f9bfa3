package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ShippingTable maps a two-letter UF code to its frete value.
type ShippingTable map[string]decimal.Decimal

// ExpectedUFs is the canonical list of the 27 Brazilian federative units.
// It backs the region selector when the live shipping sheet is unreachable
// or yields no valid rows: availability over completeness.
var ExpectedUFs = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// Regions returns the sorted UF codes present in the table. An empty table
// falls back to ExpectedUFs so callers always have something to offer.
func (t ShippingTable) Regions() []string {
	if len(t) == 0 {
		out := make([]string, len(ExpectedUFs))
		copy(out, ExpectedUFs)
		sort.Strings(out)
		return out
	}
	out := make([]string, 0, len(t))
	for uf := range t {
		out = append(out, uf)
	}
	sort.Strings(out)
	return out
}
