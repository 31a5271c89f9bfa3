package model

import "github.com/shopspring/decimal"

// PriceQuote holds the three derived prices for one product. Derived per
// request, never stored.
type PriceQuote struct {
	CardTotal         decimal.Decimal `json:"total_cartao"`
	InstallmentAmount decimal.Decimal `json:"parcela_10x"`
	CashPrice         decimal.Decimal `json:"avista"`
	PromoTotal        decimal.Decimal `json:"total_avista"`
}
