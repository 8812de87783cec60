package integration_tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fundrebalance/api"
	"fundrebalance/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type rebalanceResponseAsset struct {
	Symbol          string  `json:"symbol"`
	Price           float64 `json:"price"`
	Amount          float64 `json:"amount"`
	UsdValue        float64 `json:"usd_value"`
	FinalPercentage float64 `json:"final_percentage"`
}

func newTestRouter(prices map[string]decimal.Decimal, bookRate float64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	priceRepository := NewMockPriceRepositoryForTests(prices)
	orderBook := NewMockOrderBookForTests(bookRate)

	handler := api.ApiHandler{
		AllocationService:   service.NewAllocationService(priceRepository),
		QuoteService:        service.NewQuoteService(orderBook),
		OrderBookRepository: orderBook,
	}
	return handler.InitializeRouterEngine()
}

func Test_rebalanceEndToEnd(t *testing.T) {
	router := newTestRouter(map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(50000),
		"ETH": decimal.NewFromInt(2500),
		"SOL": decimal.NewFromInt(125),
	}, 18.5)

	t.Run("capped allocation through the full stack", func(t *testing.T) {
		body := `{
			"asset_cap": 0.5,
			"total_capital": 10000,
			"assets": [
				{"symbol": "BTC", "mcap": 90},
				{"symbol": "ETH", "mcap": 5},
				{"symbol": "SOL", "mcap": 5}
			]
		}`
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rebalance", strings.NewReader(body)))
		require.Equal(t, 200, w.Code)

		out := []rebalanceResponseAsset{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

		require.Equal(
			t,
			"",
			cmp.Diff(
				[]rebalanceResponseAsset{
					{Symbol: "BTC", Price: 50000, Amount: 0.1, UsdValue: 5000, FinalPercentage: 50},
					{Symbol: "ETH", Price: 2500, Amount: 1, UsdValue: 2500, FinalPercentage: 25},
					{Symbol: "SOL", Price: 125, Amount: 20, UsdValue: 2500, FinalPercentage: 25},
				},
				out,
				cmp.Comparer(func(f1, f2 float64) bool {
					diff := f1 - f2
					return diff < 0.00001 && diff > -0.00001
				}),
			),
		)
	})

	t.Run("infeasible cap is a 422", func(t *testing.T) {
		body := `{
			"asset_cap": 0.2,
			"total_capital": 10000,
			"assets": [
				{"symbol": "BTC", "mcap": 1},
				{"symbol": "ETH", "mcap": 1},
				{"symbol": "SOL", "mcap": 1}
			]
		}`
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rebalance", strings.NewReader(body)))
		require.Equal(t, 422, w.Code)

		responseBody := map[string]string{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		require.Equal(t, "infeasible", responseBody["code"])
	})

	t.Run("unknown symbol is a 502 with no partial table", func(t *testing.T) {
		body := `{
			"asset_cap": 0.6,
			"total_capital": 10000,
			"assets": [
				{"symbol": "BTC", "mcap": 1},
				{"symbol": "FAKE", "mcap": 1}
			]
		}`
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rebalance", strings.NewReader(body)))
		require.Equal(t, 502, w.Code)

		responseBody := map[string]string{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		require.Equal(t, "price_unavailable", responseBody["code"])
	})

	t.Run("price quote through the book", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/price?usdt=100", nil))
		require.Equal(t, 200, w.Code)

		out := map[string]float64{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.InDelta(t, 1850.0, out["price"], 1e-9)
	})
}
