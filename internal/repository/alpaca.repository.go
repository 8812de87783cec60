package repository

import (
	"context"

	"fundrebalance/internal/domain"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// alpaca's market data feed, trimmed to price reads
type alpacaRepositoryHandler struct {
	MdClient *marketdata.Client
}

func NewAlpacaRepository(apiKey, apiSecret string, endpoint string) PriceRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &alpacaRepositoryHandler{
		MdClient: mdClient,
	}
}

func (h alpacaRepositoryHandler) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	result, err := h.MdClient.GetLatestQuote(symbol, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, err)
	}

	price := decimal.NewFromFloat(result.BidPrice)
	if price.IsZero() {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, nil)
	}

	return price, nil
}
