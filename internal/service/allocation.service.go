package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fundrebalance/internal"
	"fundrebalance/internal/calculator"
	"fundrebalance/internal/domain"
	"fundrebalance/internal/logger"
	"fundrebalance/internal/repository"

	"github.com/shopspring/decimal"
)

const defaultLookupTimeout = 10 * time.Second

type AllocationService interface {
	Allocate(ctx context.Context, request domain.AllocationRequest) ([]domain.AssetAllocation, error)
}

type allocationServiceHandler struct {
	PriceRepository repository.PriceRepository
	LookupTimeout   time.Duration
}

func NewAllocationService(priceRepository repository.PriceRepository) AllocationService {
	return allocationServiceHandler{
		PriceRepository: priceRepository,
		LookupTimeout:   defaultLookupTimeout,
	}
}

// Allocate computes the capped, mcap-weighted split of the requested
// capital, then prices every asset and converts each weight into a
// currency value and unit amount. All-or-nothing: any failed lookup or
// validation aborts the whole request, never a partial table.
func (h allocationServiceHandler) Allocate(ctx context.Context, request domain.AllocationRequest) ([]domain.AssetAllocation, error) {
	log := logger.FromContext(ctx)

	if request.TotalCapital < 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("total capital must be >= 0, got %f", request.TotalCapital))
	}

	weights, err := internal.CalculateCappedWeights(internal.CalculateCappedWeightsInput{
		AssetCap: request.AssetCap,
		Assets:   request.Assets,
	})
	if err != nil {
		return nil, err
	}

	summary, err := calculator.SummarizeWeights(weights, request.AssetCap)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize weights: %w", err)
	}
	log.Infow("computed capped weights",
		"numAssets", summary.NumAssets,
		"numAtCap", summary.NumAtCap,
		"maxWeight", summary.MaxWeight,
		"concentration", summary.Concentration,
	)

	prices, err := h.lookupPrices(ctx, request.Symbols())
	if err != nil {
		return nil, err
	}

	totalCapital := decimal.NewFromFloat(request.TotalCapital)
	out := []domain.AssetAllocation{}
	for _, asset := range request.Assets {
		weight := weights[asset.Symbol]
		price := prices[asset.Symbol]
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, domain.NewDivisionByZeroPriceError(asset.Symbol)
		}

		usdValue := totalCapital.Mul(decimal.NewFromFloat(weight))
		amount := usdValue.Div(price)

		out = append(out, domain.AssetAllocation{
			Symbol:          asset.Symbol,
			Price:           price,
			Weight:          weight,
			USDValue:        usdValue,
			Amount:          amount,
			FinalPercentage: weight * 100,
		})
	}

	return out, nil
}

type priceLookupResult struct {
	Symbol string
	Price  decimal.Decimal
	Err    error
}

// lookupPrices fans the per-symbol oracle calls out on a small worker
// pool - one call per symbol - and joins them. The first failure cancels
// every lookup still pending.
func (h allocationServiceHandler) lookupPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputCh := make(chan string, len(symbols))
	resultCh := make(chan priceLookupResult, len(symbols))
	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		inputCh <- symbol
	}
	close(inputCh)

	numGoroutines := 4
	if len(symbols) < numGoroutines {
		numGoroutines = len(symbols)
	}
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for symbol := range inputCh {
				// drain without calling the oracle once a sibling lookup
				// has already failed
				if err := ctx.Err(); err != nil {
					resultCh <- priceLookupResult{Symbol: symbol, Err: err}
					wg.Done()
					continue
				}
				lookupCtx, endLookup := context.WithTimeout(ctx, h.LookupTimeout)
				price, err := h.PriceRepository.GetPrice(lookupCtx, symbol)
				endLookup()
				if err != nil && errors.Is(err, context.DeadlineExceeded) {
					err = domain.NewTimeoutError(symbol, err)
				}
				resultCh <- priceLookupResult{
					Symbol: symbol,
					Price:  price,
					Err:    err,
				}
				wg.Done()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	prices := map[string]decimal.Decimal{}
	var firstErr error
	for result := range resultCh {
		if result.Err != nil {
			if firstErr == nil {
				firstErr = result.Err
			}
			cancel()
			continue
		}
		prices[result.Symbol] = result.Price
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return prices, nil
}
