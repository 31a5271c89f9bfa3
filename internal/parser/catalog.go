package parser

import (
	"strings"

	"github.com/google/uuid"

	"github.com/odlagro/apoiov/internal/model"
	"github.com/odlagro/apoiov/internal/observability"
)

// headerEchoes are labels that show up as "product names" when the sheet has
// a re-inserted header row in the middle of the data.
var headerEchoes = []string{"MODELO", "CÓDIGO", "CODIGO"}

func isHeaderEcho(name string) bool {
	n := NormalizeLabel(name)
	for _, e := range headerEchoes {
		if n == e {
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// NormalizeCatalog turns raw sheet rows into canonical products. The header
// is located inside the scan window; every data row after it either becomes
// a Product or is skipped (empty name, header echo, unparseable or negative
// price). Output preserves source row order and is rebuilt in full on every
// call.
func NormalizeCatalog(rows [][]string) ([]model.Product, error) {
	cm, headerIdx, err := ResolveHeaders(rows)
	if err != nil {
		return nil, err
	}

	data := rows[headerIdx+1:]
	out := make([]model.Product, 0, len(data))

	for _, row := range data {
		name := strings.TrimSpace(cell(row, cm.ProductName))
		if name == "" || isHeaderEcho(name) {
			observability.RowsSkipped.WithLabelValues("produtos").Inc()
			continue
		}

		price, ok := ParseMoney(cell(row, cm.CardPrice))
		if !ok || price.Sign() < 0 {
			observability.RowsSkipped.WithLabelValues("produtos").Inc()
			continue
		}

		p := model.Product{
			ID:        uuid.New().String(),
			Name:      name,
			CardPrice: price,
		}
		if cm.ImageRef >= 0 {
			p.ImageURL = ExtractImageURL(cell(row, cm.ImageRef))
		}
		if cm.CashPriceHint >= 0 {
			if d, ok := ParseMoney(cell(row, cm.CashPriceHint)); ok {
				p.CashPriceHint = &d
			}
		}
		if cm.InstallmentHint >= 0 {
			if d, ok := ParseMoney(cell(row, cm.InstallmentHint)); ok {
				p.InstallmentHint = &d
			}
		}

		out = append(out, p)
	}

	return out, nil
}
