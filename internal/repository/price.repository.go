package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceRepository is the price oracle contract: one symbol in, its
// current unit price out. Implementations decide the venue (binance,
// yahoo, alpaca); the allocation engine only sees this method, so tests
// swap in a deterministic in-memory stand-in.
//
//go:generate mockgen -destination=mocks/price.repository.go -package=mock_repository . PriceRepository
type PriceRepository interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
