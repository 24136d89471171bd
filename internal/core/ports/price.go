package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource returns the price of one bitcoin in the given fiat currency.
type PriceSource interface {
	GetPrice(ctx context.Context, fiat string) (decimal.Decimal, error)
}
