package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SummarizeWeights(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		summary, err := SummarizeWeights(map[string]float64{
			"A": 0.5,
			"B": 0.25,
			"C": 0.25,
		}, 0.5)
		require.NoError(t, err)

		require.Equal(t, 3, summary.NumAssets)
		require.Equal(t, 1, summary.NumAtCap)
		require.Equal(t, 0.25, summary.MinWeight)
		require.Equal(t, 0.5, summary.MaxWeight)
		require.InDelta(t, 1.0/3.0, summary.MeanWeight, 1e-9)
		require.InDelta(t, 0.375, summary.Concentration, 1e-9)
	})

	t.Run("single weight has zero stdev", func(t *testing.T) {
		summary, err := SummarizeWeights(map[string]float64{"A": 1}, 1)
		require.NoError(t, err)
		require.Equal(t, 0.0, summary.WeightStdev)
		require.Equal(t, 1.0, summary.Concentration)
	})

	t.Run("empty set rejected", func(t *testing.T) {
		_, err := SummarizeWeights(map[string]float64{}, 0.5)
		require.Error(t, err)
	})
}
