package order

import (
	"mesa/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// discountedPrice applies one promotion to a unit price, rounded to cents.
// FIXED discounts floor at zero.
func discountedPrice(promo models.Promotion, price decimal.Decimal) decimal.Decimal {
	switch promo.Type {
	case models.PromotionTypePercentage:
		factor := oneHundred.Sub(promo.Value).Div(oneHundred)
		return price.Mul(factor).Round(2)
	case models.PromotionTypeFixed:
		discounted := price.Sub(promo.Value)
		if discounted.Sign() < 0 {
			return decimal.Zero
		}
		return discounted.Round(2)
	default:
		return price
	}
}

// bestPrice picks the qualifying promotion that yields the lowest unit
// price. Ties keep the first promotion found, matching the order the store
// returned them in.
func bestPrice(price decimal.Decimal, promos []models.Promotion) (decimal.Decimal, *uint) {
	best := price
	var promoID *uint

	for i := range promos {
		candidate := discountedPrice(promos[i], price)
		if candidate.LessThan(best) {
			best = candidate
			id := promos[i].ID
			promoID = &id
		}
	}
	return best, promoID
}
