// Package funding charges external cards to fund wallet deposits.
package funding

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

var (
	ErrInvalidAmount = errors.New("funding amount must be positive")
	ErrMissingSource = errors.New("card token is required")
)

// ChargeCard is the card-processor surface the wallet handlers depend on.
type ChargeCard interface {
	Charge(token string, amount decimal.Decimal, description string) (string, error)
}

type service struct{}

// NewService creates a new card funding service.
func NewService() ChargeCard {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &service{}
}

// Charge captures the amount from the tokenized card and returns the
// processor's charge reference. Amounts are converted to minor units.
func (s *service) Charge(token string, amount decimal.Decimal, description string) (string, error) {
	if amount.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	if token == "" {
		return "", ErrMissingSource
	}

	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(cents),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String(description),
	}
	if err := params.SetSource(token); err != nil {
		return "", fmt.Errorf("invalid card source: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return "", fmt.Errorf("card charge failed: %w", err)
	}
	return ch.ID, nil
}
