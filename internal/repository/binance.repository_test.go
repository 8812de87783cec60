package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundrebalance/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_binanceRepositoryHandler_GetPrice(t *testing.T) {
	t.Run("returns the best ask", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v3/depth", r.URL.Path)
			require.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
			w.Write([]byte(`{"lastUpdateId":1,"bids":[["63000.01","0.5"]],"asks":[["63010.55","0.25"],["63011.00","1.0"]]}`))
		}))
		defer server.Close()

		handler := NewBinanceRepository(server.URL)
		price, err := handler.GetPrice(context.Background(), "BTC")
		require.NoError(t, err)
		require.True(t, price.Equal(decimal.RequireFromString("63010.55")))
	})

	t.Run("no asks reported as price unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"lastUpdateId":1,"bids":[],"asks":[]}`))
		}))
		defer server.Close()

		handler := NewBinanceRepository(server.URL)
		_, err := handler.GetPrice(context.Background(), "FAKE")
		require.Error(t, err)
		code, ok := domain.ErrorCodeOf(err)
		require.True(t, ok)
		require.Equal(t, domain.ErrorCodePriceUnavailable, code)
	})

	t.Run("non-200 reported as price unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(400)
			w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
		}))
		defer server.Close()

		handler := NewBinanceRepository(server.URL)
		_, err := handler.GetPrice(context.Background(), "NOPE")
		require.Error(t, err)
		code, ok := domain.ErrorCodeOf(err)
		require.True(t, ok)
		require.Equal(t, domain.ErrorCodePriceUnavailable, code)
	})
}
