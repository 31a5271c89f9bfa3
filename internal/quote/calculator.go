package quote

import (
	"github.com/shopspring/decimal"

	"github.com/odlagro/apoiov/internal/model"
)

var (
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
)

// round2 quantizes to 2 fractional digits, half up. decimal.Round rounds
// half away from zero, which is the same thing on the non-negative money
// this calculator is given.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Compute derives the three quoted prices from a card price, a discount
// percentage in [0,100] and a shipping fee. Every intermediate value is
// rounded to 2 digits before it feeds the next step; the order matters and
// matches the sheet's own arithmetic. The discount never applies to the
// shipping fee. Inputs are validated by the caller.
func Compute(cardPrice, discountPct, shippingFee decimal.Decimal) model.PriceQuote {
	cardTotal := round2(cardPrice.Add(shippingFee))
	installment := round2(cardTotal.Div(ten))
	cashPrice := round2(cardPrice.Mul(hundred.Sub(discountPct)).Div(hundred))
	promoTotal := round2(cashPrice.Add(shippingFee))

	return model.PriceQuote{
		CardTotal:         cardTotal,
		InstallmentAmount: installment,
		CashPrice:         cashPrice,
		PromoTotal:        promoTotal,
	}
}
