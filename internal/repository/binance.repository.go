package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"fundrebalance/internal/domain"

	"github.com/shopspring/decimal"
)

// BinanceRepository prices an asset off the top of the <SYMBOL>USDT book
// on binance - the best ask is what you'd actually pay for the first
// unit, which is the honest number to size a buy with.
type binanceRepositoryHandler struct {
	Endpoint   string
	HttpClient *http.Client
}

func NewBinanceRepository(endpoint string) PriceRepository {
	return &binanceRepositoryHandler{
		Endpoint:   endpoint,
		HttpClient: http.DefaultClient,
	}
}

type binanceDepthResponse struct {
	// levels come back as [price, quantity] string pairs
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

func (h binanceRepositoryHandler) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	requestUrl := fmt.Sprintf("%s/api/v3/depth?symbol=%sUSDT&limit=1", h.Endpoint, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return decimal.Zero, err
	}
	response, err := h.HttpClient.Do(req)
	if err != nil {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, err)
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, fmt.Errorf("binance depth failed with status code %d: %s", response.StatusCode, string(responseBytes)))
	}

	responseBody := binanceDepthResponse{}
	err = json.Unmarshal(responseBytes, &responseBody)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse binance depth response: %w", err)
	}

	if len(responseBody.Asks) == 0 || len(responseBody.Asks[0]) < 2 {
		return decimal.Zero, domain.NewPriceUnavailableError(symbol, fmt.Errorf("no asks found for %sUSDT", symbol))
	}

	askPrice, err := decimal.NewFromString(responseBody.Asks[0][0])
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse ask price %q for %s: %w", responseBody.Asks[0][0], symbol, err)
	}

	return askPrice, nil
}
