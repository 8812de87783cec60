package service

import (
	"context"

	"fundrebalance/internal"
	"fundrebalance/internal/logger"
	"fundrebalance/internal/repository"
)

type QuoteService interface {
	// Quote converts sourceAmount at the current book-derived rate and
	// returns the target-currency amount.
	Quote(ctx context.Context, sourceAmount float64) (float64, error)
}

type quoteServiceHandler struct {
	OrderBookRepository repository.OrderBookRepository
}

func NewQuoteService(orderBookRepository repository.OrderBookRepository) QuoteService {
	return quoteServiceHandler{
		OrderBookRepository: orderBookRepository,
	}
}

func (h quoteServiceHandler) Quote(ctx context.Context, sourceAmount float64) (float64, error) {
	rate, err := h.OrderBookRepository.EffectiveRate(sourceAmount)
	if err != nil {
		return 0, err
	}

	converted, err := internal.Convert(sourceAmount, rate)
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Debugw("quoted conversion",
		"sourceAmount", sourceAmount,
		"rate", rate,
		"converted", converted,
	)
	return converted, nil
}
