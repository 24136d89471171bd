package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/shopspring/decimal"
)

type priceSource struct {
	svc *Service
}

// PriceSource returns a PriceSource backed by the wallet engine price
// lookup.
func (s *Service) PriceSource() ports.PriceSource {
	return priceSource{s}
}

func (p priceSource) GetPrice(
	ctx context.Context, fiat string,
) (decimal.Decimal, error) {
	price, err := p.svc.GetBitcoinPrice(ctx, fiat)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(price), nil
}
