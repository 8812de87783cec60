package calculator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

type WeightSummary struct {
	NumAssets     int
	NumAtCap      int
	MinWeight     float64
	MaxWeight     float64
	MeanWeight    float64
	WeightStdev   float64
	Concentration float64 // herfindahl index, 1/N (even) .. 1 (all in one)
}

// SummarizeWeights condenses a weight distribution into the numbers an
// operator actually looks at when eyeballing a rebalance: how many
// assets got pinned at the cap and how concentrated the fund ended up.
func SummarizeWeights(weights map[string]float64, assetCap float64) (*WeightSummary, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("cannot summarize empty weight set")
	}

	dataset := []float64{}
	numAtCap := 0
	concentration := 0.0
	for _, w := range weights {
		dataset = append(dataset, w)
		if math.Abs(w-assetCap) < 1e-9 {
			numAtCap++
		}
		concentration += w * w
	}

	min, err := stats.Min(dataset)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(dataset)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(dataset)
	if err != nil {
		return nil, err
	}
	stdev := 0.0
	if len(dataset) > 1 {
		stdev, err = stats.StandardDeviationSample(dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate stdev: %w", err)
		}
	}

	return &WeightSummary{
		NumAssets:     len(weights),
		NumAtCap:      numAtCap,
		MinWeight:     min,
		MaxWeight:     max,
		MeanWeight:    mean,
		WeightStdev:   stdev,
		Concentration: concentration,
	}, nil
}
