package cmd

import (
	"context"

	"fundrebalance/internal/domain"
	"fundrebalance/internal/repository"

	"github.com/shopspring/decimal"
)

const UseMockPrices = false

// static quotes for local runs without hitting binance
// should not be used in prod, obv

func NewMockPriceRepository() repository.PriceRepository {
	return mockPriceRepositoryHandler{
		prices: map[string]decimal.Decimal{
			"BTC":  decimal.NewFromFloat(63250.5),
			"ETH":  decimal.NewFromFloat(2610.22),
			"SOL":  decimal.NewFromFloat(144.7),
			"XRP":  decimal.NewFromFloat(0.5731),
			"ADA":  decimal.NewFromFloat(0.3402),
			"DOGE": decimal.NewFromFloat(0.1041),
		},
	}
}

type mockPriceRepositoryHandler struct {
	prices map[string]decimal.Decimal
}

func (m mockPriceRepositoryHandler) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, ok := m.prices[symbol]
	if !ok {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, nil)
	}
	return price, nil
}
