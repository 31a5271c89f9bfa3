package model

import "github.com/shopspring/decimal"

// Product is one normalized catalog row. Built fresh on every refresh and
// never mutated afterwards, so it is safe to share read-only across handlers.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"modelo"`
	CardPrice decimal.Decimal `json:"cartao"`
	ImageURL  string          `json:"img,omitempty"`

	// Display hints copied from the sheet when the columns exist. The quote
	// calculator derives its own values and never reads these.
	CashPriceHint   *decimal.Decimal `json:"avista,omitempty"`
	InstallmentHint *decimal.Decimal `json:"parcela10,omitempty"`
}
