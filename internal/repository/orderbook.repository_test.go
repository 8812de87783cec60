package repository

import (
	"encoding/json"
	"testing"

	"fundrebalance/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_valrOrderBookHandler_EffectiveRate(t *testing.T) {
	book := &valrOrderBookHandler{Pair: "USDTZAR"}

	t.Run("empty book is unavailable", func(t *testing.T) {
		_, err := book.EffectiveRate(1)
		require.Error(t, err)
		code, ok := domain.ErrorCodeOf(err)
		require.True(t, ok)
		require.Equal(t, domain.ErrorCodePriceUnavailable, code)
	})

	book.asks = []bookLevel{
		{Price: 18.0, Quantity: 100},
		{Price: 18.5, Quantity: 200},
	}

	t.Run("zero amount rates at the best ask", func(t *testing.T) {
		rate, err := book.EffectiveRate(0)
		require.NoError(t, err)
		require.Equal(t, 18.0, rate)
	})

	t.Run("fill within the first level", func(t *testing.T) {
		rate, err := book.EffectiveRate(50)
		require.NoError(t, err)
		require.InDelta(t, 18.0, rate, 1e-9)
	})

	t.Run("fill spanning levels blends the price", func(t *testing.T) {
		// 100 @ 18.0 + 100 @ 18.5 over 200 units
		rate, err := book.EffectiveRate(200)
		require.NoError(t, err)
		require.InDelta(t, 18.25, rate, 1e-9)
	})

	t.Run("insufficient liquidity is unavailable", func(t *testing.T) {
		_, err := book.EffectiveRate(500)
		require.Error(t, err)
		code, ok := domain.ErrorCodeOf(err)
		require.True(t, ok)
		require.Equal(t, domain.ErrorCodePriceUnavailable, code)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := book.EffectiveRate(-1)
		require.Error(t, err)
		code, ok := domain.ErrorCodeOf(err)
		require.True(t, ok)
		require.Equal(t, domain.ErrorCodeInvalidInput, code)
	})
}

func Test_valrOrderBookHandler_applyUpdate(t *testing.T) {
	book := &valrOrderBookHandler{Pair: "USDTZAR"}

	raw := `{
		"type": "FULL_ORDERBOOK_UPDATE",
		"data": {
			"Asks": [
				{"Price": "18.50", "Orders": [{"quantity": "1,000.5"}]},
				{"Price": "18.20", "Orders": [{"quantity": "50"}]},
				{"Price": "18.30", "Orders": [{"quantity": "0"}]},
				{"Price": "bogus", "Orders": [{"quantity": "10"}]}
			],
			"Bids": [
				{"Price": "18.10", "Orders": [{"quantity": "25"}]}
			]
		}
	}`
	message := valrStreamMessage{}
	require.NoError(t, json.Unmarshal([]byte(raw), &message))

	book.applyUpdate(message.Data)

	// zero-quantity and unparseable levels dropped, rest sorted ascending
	require.Equal(t, []bookLevel{
		{Price: 18.2, Quantity: 50},
		{Price: 18.5, Quantity: 1000.5},
	}, book.asks)

	// an update without asks leaves the book alone
	book.applyUpdate(valrOrderBookData{})
	require.Len(t, book.asks, 2)
}
