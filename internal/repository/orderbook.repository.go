package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"fundrebalance/internal/domain"
	"fundrebalance/internal/logger"

	"github.com/gorilla/websocket"
)

// OrderBookRepository tracks the live ask side of one currency pair and
// quotes the effective rate for converting a given source amount. The
// book comes from the valr websocket feed and is replaced wholesale on
// every FULL_ORDERBOOK_UPDATE.
type OrderBookRepository interface {
	// Start blocks until ctx is cancelled, reconnecting on stream errors.
	// Run it on its own goroutine.
	Start(ctx context.Context)
	// EffectiveRate walks the asks and returns target units per source
	// unit for the given source amount. For amount 0 it returns the best
	// ask so convert(0, rate) stays well-defined.
	EffectiveRate(sourceAmount float64) (float64, error)
}

type bookLevel struct {
	Price    float64
	Quantity float64
}

type valrOrderBookHandler struct {
	WsEndpoint string
	Pair       string

	mu   sync.RWMutex
	asks []bookLevel // ascending by price
}

func NewValrOrderBookRepository(wsEndpoint, pair string) OrderBookRepository {
	return &valrOrderBookHandler{
		WsEndpoint: wsEndpoint,
		Pair:       pair,
	}
}

func (h *valrOrderBookHandler) EffectiveRate(sourceAmount float64) (float64, error) {
	if sourceAmount < 0 {
		return 0, domain.NewInvalidInputError(fmt.Sprintf("source amount must be >= 0, got %f", sourceAmount))
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.asks) == 0 {
		return 0, domain.NewPriceUnavailableError(h.Pair, fmt.Errorf("order book is empty"))
	}
	if sourceAmount == 0 {
		return h.asks[0].Price, nil
	}

	remaining := sourceAmount
	totalCost := 0.0
	for _, level := range h.asks {
		if remaining <= level.Quantity {
			totalCost += remaining * level.Price
			remaining = 0
			break
		}
		totalCost += level.Quantity * level.Price
		remaining -= level.Quantity
	}
	if remaining > 0 {
		return 0, domain.NewPriceUnavailableError(h.Pair, fmt.Errorf("order book has insufficient liquidity for %f", sourceAmount))
	}

	return totalCost / sourceAmount, nil
}

type valrSubscribeMessage struct {
	Type          string             `json:"type"`
	Subscriptions []valrSubscription `json:"subscriptions"`
}

type valrSubscription struct {
	Event string   `json:"event"`
	Pairs []string `json:"pairs"`
}

type valrStreamMessage struct {
	Type string            `json:"type"`
	Data valrOrderBookData `json:"data"`
}

type valrOrderBookData struct {
	Asks []valrBookEntry `json:"Asks"`
	Bids []valrBookEntry `json:"Bids"`
}

type valrBookEntry struct {
	Price  string      `json:"Price"`
	Orders []valrOrder `json:"Orders"`
}

type valrOrder struct {
	Quantity string `json:"quantity"`
}

func (h *valrOrderBookHandler) Start(ctx context.Context) {
	log := logger.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := h.connectAndStream(ctx); err != nil {
				log.Warnf("orderbook stream for %s dropped: %v", h.Pair, err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
					continue
				}
			}
		}
	}
}

func (h *valrOrderBookHandler) connectAndStream(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, h.WsEndpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", h.WsEndpoint, err)
	}
	defer conn.Close()

	// force the blocking read loop to unwind on cancellation
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	subscribe := valrSubscribeMessage{
		Type: "SUBSCRIBE",
		Subscriptions: []valrSubscription{
			{
				Event: "FULL_ORDERBOOK_UPDATE",
				Pairs: []string{h.Pair},
			},
		},
	}
	if err := conn.WriteJSON(subscribe); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", h.Pair, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}

		message := valrStreamMessage{}
		if err := json.Unmarshal(raw, &message); err != nil {
			// pings and ack frames don't match the update shape
			continue
		}
		if message.Type != "FULL_ORDERBOOK_UPDATE" {
			continue
		}
		h.applyUpdate(message.Data)
	}
}

func (h *valrOrderBookHandler) applyUpdate(data valrOrderBookData) {
	// the feed resends whole sides; an absent side means no change.
	// bids are ignored - quoting a buy only ever walks the asks.
	if len(data.Asks) == 0 {
		return
	}

	asks := make([]bookLevel, 0, len(data.Asks))
	for _, entry := range data.Asks {
		if len(entry.Orders) == 0 {
			continue
		}
		price, err := strconv.ParseFloat(entry.Price, 64)
		if err != nil {
			continue
		}
		quantity, err := strconv.ParseFloat(strings.ReplaceAll(entry.Orders[0].Quantity, ",", ""), 64)
		if err != nil || quantity <= 0 {
			continue
		}
		asks = append(asks, bookLevel{Price: price, Quantity: quantity})
	}
	sort.Slice(asks, func(i, j int) bool {
		return asks[i].Price < asks[j].Price
	})

	h.mu.Lock()
	h.asks = asks
	h.mu.Unlock()
}
