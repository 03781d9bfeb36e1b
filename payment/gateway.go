package payment

import (
	"context"
	"errors"
	"math"
)

// Intent is an in-progress charge at the payment processor.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Gateway creates payment intents. Card data never passes through the API.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

var ErrInvalidAmount = errors.New("amount must be a positive number")

// ToMinorUnits converts a price in major currency units to cents, rounding to the nearest cent.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	amount := int64(math.Round(price * 100))
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}
