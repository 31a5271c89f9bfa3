package parser

import (
	"strings"

	"github.com/odlagro/apoiov/internal/model"
	"github.com/odlagro/apoiov/internal/observability"
)

// Fixed column layout of the frete sheet: UF in column B, value in column C.
// This table has never drifted, so no header resolution is attempted.
const (
	shippingUFColumn  = 1
	shippingFeeColumn = 2
)

// NormalizeUF upper-cases a region code and strips spaces and hyphens, so
// " sp " and "S-P" both read as SP.
func NormalizeUF(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

func isUF(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// NormalizeShipping turns raw frete rows into a UF → fee table. Rows with a
// malformed code or an unparseable fee are skipped; a duplicated UF keeps the
// last value seen. An empty result is legal; callers fall back to
// model.ExpectedUFs for the region list.
func NormalizeShipping(rows [][]string) model.ShippingTable {
	table := make(model.ShippingTable)
	if len(rows) <= 1 {
		return table
	}

	for _, row := range rows[1:] {
		uf := NormalizeUF(cell(row, shippingUFColumn))
		fee, ok := ParseMoney(cell(row, shippingFeeColumn))
		if !isUF(uf) || !ok || fee.Sign() < 0 {
			observability.RowsSkipped.WithLabelValues("frete").Inc()
			continue
		}
		table[uf] = fee
	}

	return table
}
