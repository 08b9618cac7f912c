package order

import (
	"testing"

	"mesa/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name  string
		promo models.Promotion
		price string
		want  string
	}{
		{"percentage", models.Promotion{Type: models.PromotionTypePercentage, Value: money("10")}, "20.00", "18.00"},
		{"percentage rounds to cents", models.Promotion{Type: models.PromotionTypePercentage, Value: money("15")}, "9.99", "8.49"},
		{"fixed", models.Promotion{Type: models.PromotionTypeFixed, Value: money("3")}, "20.00", "17.00"},
		{"fixed floors at zero", models.Promotion{Type: models.PromotionTypeFixed, Value: money("25")}, "20.00", "0"},
		{"unknown type keeps price", models.Promotion{Type: "BOGOF", Value: money("10")}, "20.00", "20.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := discountedPrice(tt.promo, money(tt.price))
			assert.True(t, got.Equal(money(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestBestPrice(t *testing.T) {
	price := money("20.00")

	t.Run("no promotions keeps list price", func(t *testing.T) {
		got, promoID := bestPrice(price, nil)
		assert.True(t, got.Equal(price))
		assert.Nil(t, promoID)
	})

	t.Run("lowest price wins", func(t *testing.T) {
		promos := []models.Promotion{
			{ID: 1, Type: models.PromotionTypeFixed, Value: money("2")},       // 18.00
			{ID: 2, Type: models.PromotionTypePercentage, Value: money("25")}, // 15.00
			{ID: 3, Type: models.PromotionTypeFixed, Value: money("4")},       // 16.00
		}
		got, promoID := bestPrice(price, promos)
		assert.True(t, got.Equal(money("15.00")))
		require.NotNil(t, promoID)
		assert.Equal(t, uint(2), *promoID)
	})

	t.Run("tie keeps the first found", func(t *testing.T) {
		promos := []models.Promotion{
			{ID: 7, Type: models.PromotionTypeFixed, Value: money("5")},       // 15.00
			{ID: 8, Type: models.PromotionTypePercentage, Value: money("25")}, // 15.00
		}
		_, promoID := bestPrice(price, promos)
		require.NotNil(t, promoID)
		assert.Equal(t, uint(7), *promoID)
	})

	t.Run("promotion that raises the price is ignored", func(t *testing.T) {
		promos := []models.Promotion{
			{ID: 9, Type: models.PromotionTypePercentage, Value: money("-10")}, // 22.00
		}
		got, promoID := bestPrice(price, promos)
		assert.True(t, got.Equal(price))
		assert.Nil(t, promoID)
	})
}
