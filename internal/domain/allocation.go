package domain

import (
	"github.com/shopspring/decimal"
)

// AssetSpec is one proposed asset: a symbol plus the relative size used
// for proportional weighting. MarketCap does not need to be a literal
// market capitalization - any non-negative weight works.
type AssetSpec struct {
	Symbol    string
	MarketCap float64
}

type AllocationRequest struct {
	// max fractional weight any single asset may receive, in (0, 1]
	AssetCap     float64
	TotalCapital float64
	Assets       []AssetSpec
}

func (r AllocationRequest) Symbols() []string {
	symbols := []string{}
	for _, asset := range r.Assets {
		symbols = append(symbols, asset.Symbol)
	}
	return symbols
}

// AssetAllocation is the computed slice of capital for one asset. It's a
// snapshot - nothing stores or updates these after the request returns.
type AssetAllocation struct {
	Symbol          string
	Price           decimal.Decimal
	Weight          float64
	USDValue        decimal.Decimal
	Amount          decimal.Decimal
	FinalPercentage float64
}
