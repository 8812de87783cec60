package integration_tests

import (
	"context"

	"fundrebalance/internal/domain"
	"fundrebalance/internal/repository"

	"github.com/shopspring/decimal"
)

func NewMockPriceRepositoryForTests(prices map[string]decimal.Decimal) repository.PriceRepository {
	return mockPriceRepositoryForTestsHandler{prices: prices}
}

type mockPriceRepositoryForTestsHandler struct {
	prices map[string]decimal.Decimal
}

func (m mockPriceRepositoryForTestsHandler) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, ok := m.prices[symbol]
	if !ok {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, nil)
	}
	return price, nil
}

func NewMockOrderBookForTests(rate float64) repository.OrderBookRepository {
	return mockOrderBookForTestsHandler{rate: rate}
}

type mockOrderBookForTestsHandler struct {
	rate float64
}

func (m mockOrderBookForTestsHandler) Start(ctx context.Context) {}

func (m mockOrderBookForTestsHandler) EffectiveRate(sourceAmount float64) (float64, error) {
	if m.rate == 0 {
		return 0, domain.NewPriceUnavailableError("USDTZAR", nil)
	}
	return m.rate, nil
}
