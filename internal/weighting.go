package internal

import (
	"fmt"
	"math"

	"fundrebalance/internal/domain"
)

// WeightSumTolerance absorbs float rounding in cap comparisons and in the
// final sum-to-1 check. Without it the redistribution loop can oscillate
// on weights that sit exactly at the cap.
const WeightSumTolerance = 1e-9

type CalculateCappedWeightsInput struct {
	AssetCap float64
	Assets   []domain.AssetSpec
}

// CalculateCappedWeights computes final per-asset weights such that no
// weight exceeds the cap, the weights sum to 1, and assets that are not
// pinned at the cap stay proportional to their market caps.
//
// It works by iterative redistribution: start everything proportional,
// pin every asset whose candidate weight exceeds the cap at exactly the
// cap, and re-spread the remaining weight across the still-free assets.
// Each pass pins at least one asset, so it runs at most len(assets)
// passes.
func CalculateCappedWeights(in CalculateCappedWeightsInput) (map[string]float64, error) {
	if err := validateCappedWeightsInput(in); err != nil {
		return nil, err
	}

	n := len(in.Assets)
	if in.AssetCap*float64(n) < 1-WeightSumTolerance {
		return nil, domain.NewInfeasibleError(in.AssetCap, n)
	}

	// tagged state per asset: free vs fixed-at-cap. Indexing a fixed
	// slice instead of deleting from a shared collection keeps the
	// original order intact for the proportionality math.
	free := make([]bool, n)
	for i := range free {
		free[i] = true
	}
	weights := make([]float64, n)
	fixedTotal := 0.0

	for iter := 0; iter < n; iter++ {
		freeMcapTotal := 0.0
		numFree := 0
		for i, asset := range in.Assets {
			if free[i] {
				freeMcapTotal += asset.MarketCap
				numFree++
			}
		}
		availableWeight := 1 - fixedTotal

		if numFree == 0 || freeMcapTotal == 0 {
			if availableWeight > WeightSumTolerance {
				// leftover weight with nothing left to absorb it
				return nil, domain.NewInfeasibleError(in.AssetCap, n)
			}
			break
		}

		pinnedThisPass := false
		for i, asset := range in.Assets {
			if !free[i] {
				continue
			}
			candidate := (asset.MarketCap / freeMcapTotal) * availableWeight
			if candidate > in.AssetCap+WeightSumTolerance {
				free[i] = false
				weights[i] = in.AssetCap
				fixedTotal += in.AssetCap
				pinnedThisPass = true
			} else {
				weights[i] = candidate
			}
		}
		if !pinnedThisPass {
			break
		}
	}

	// validate final weights sum to 1
	sum := 0.0
	out := map[string]float64{}
	for i, asset := range in.Assets {
		if math.IsNaN(weights[i]) {
			return nil, fmt.Errorf("invalid weight NaN for %s", asset.Symbol)
		}
		sum += weights[i]
		out[asset.Symbol] = weights[i]
	}
	if math.Abs(sum-1) > WeightSumTolerance {
		return nil, fmt.Errorf("capped weights should sum to 1, got %.12f", sum)
	}

	return out, nil
}

func validateCappedWeightsInput(in CalculateCappedWeightsInput) error {
	if len(in.Assets) == 0 {
		return domain.NewInvalidInputError("at least one asset is required")
	}
	if in.AssetCap <= 0 || in.AssetCap > 1 {
		return domain.NewInvalidInputError(fmt.Sprintf("asset cap must be in (0, 1], got %f", in.AssetCap))
	}

	seen := map[string]bool{}
	mcapTotal := 0.0
	for _, asset := range in.Assets {
		if asset.Symbol == "" {
			return domain.NewInvalidInputError("asset symbol must not be empty")
		}
		if seen[asset.Symbol] {
			return domain.NewInvalidInputError(fmt.Sprintf("duplicate asset symbol %s", asset.Symbol))
		}
		seen[asset.Symbol] = true
		if asset.MarketCap < 0 {
			return domain.NewInvalidInputError(fmt.Sprintf("market cap for %s must be >= 0, got %f", asset.Symbol, asset.MarketCap))
		}
		mcapTotal += asset.MarketCap
	}
	// zero total gives no basis for proportional weighting - fail rather
	// than guess an equal-weight fallback
	if mcapTotal == 0 {
		return domain.NewInvalidInputError("market caps must not all be zero")
	}
	return nil
}
