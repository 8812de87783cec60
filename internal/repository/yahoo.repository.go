package repository

import (
	"context"
	"fmt"

	"fundrebalance/internal/domain"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// yahoo quotes cover listed equities and ETFs - useful when the proposed
// fund isn't pure crypto. the finance-go client has no context support,
// so cancellation only takes effect between lookups.
type yahooRepositoryHandler struct{}

func NewYahooRepository() PriceRepository {
	return yahooRepositoryHandler{}
}

func (h yahooRepositoryHandler) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, err)
	}
	if q == nil {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, fmt.Errorf("yahoo returned no quote"))
	}

	return decimal.NewFromFloat(q.RegularMarketPrice), nil
}
