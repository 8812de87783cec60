package cmd

import (
	"fmt"
	"os"
	"strings"

	"fundrebalance/api"
	"fundrebalance/internal"
	"fundrebalance/internal/repository"
	"fundrebalance/internal/service"
)

func NewPriceRepository(secrets *internal.Secrets) (repository.PriceRepository, error) {
	if strings.EqualFold(os.Getenv("FUND_ENV"), "test") || UseMockPrices {
		return NewMockPriceRepository(), nil
	}

	switch secrets.PriceSource {
	case "binance":
		return repository.NewBinanceRepository(secrets.Binance.Endpoint), nil
	case "yahoo":
		return repository.NewYahooRepository(), nil
	case "alpaca":
		return repository.NewAlpacaRepository(secrets.Alpaca.ApiKey, secrets.Alpaca.ApiSecret, secrets.Alpaca.Endpoint), nil
	}
	return nil, fmt.Errorf("unknown price source %q", secrets.PriceSource)
}

func InitializeDependencies() (*api.ApiHandler, *internal.Secrets, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	priceRepository, err := NewPriceRepository(secrets)
	if err != nil {
		return nil, nil, err
	}
	orderBookRepository := repository.NewValrOrderBookRepository(secrets.Valr.WsEndpoint, secrets.Valr.Pair)

	allocationService := service.NewAllocationService(priceRepository)
	quoteService := service.NewQuoteService(orderBookRepository)

	apiHandler := &api.ApiHandler{
		AllocationService:   allocationService,
		QuoteService:        quoteService,
		OrderBookRepository: orderBookRepository,
	}

	return apiHandler, secrets, nil
}
