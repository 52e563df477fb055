package mcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriticWeights(t *testing.T) {
	t.Run("two perfectly conflicting columns weigh equally", func(t *testing.T) {
		// Min-max normalized columns are [0,0.5,1] and [1,0.5,0]:
		// identical spread, correlation -1, so CRITIC splits evenly.
		matrix := [][]float64{{1, 4}, {2, 3}, {3, 2}}

		weights, err := CriticWeights(matrix)
		require.NoError(t, err)
		require.Len(t, weights, 2)
		assert.InDelta(t, 0.5, weights[0], 1e-9)
		assert.InDelta(t, 0.5, weights[1], 1e-9)
	})

	t.Run("weights lie on the unit simplex", func(t *testing.T) {
		matrix := [][]float64{
			{256, 8.0, 1600, 11},
			{1024, 1.6, 1500, 12},
			{512, 2.4, 1200, 13},
			{768, 4.0, 1000, 14},
		}

		weights, err := CriticWeights(matrix)
		require.NoError(t, err)

		sum := 0.0
		for _, w := range weights {
			assert.GreaterOrEqual(t, w, 0.0)
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("zero-variance column gets zero weight", func(t *testing.T) {
		matrix := [][]float64{{1, 5}, {1, 7}, {1, 9}}

		weights, err := CriticWeights(matrix)
		require.NoError(t, err)
		assert.Equal(t, 0.0, weights[0])
		assert.InDelta(t, 1.0, weights[1], 1e-9)
	})

	t.Run("all-constant matrix falls back to uniform weights", func(t *testing.T) {
		matrix := [][]float64{{3, 3}, {3, 3}}

		weights, err := CriticWeights(matrix)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, weights[0], 1e-9)
		assert.InDelta(t, 0.5, weights[1], 1e-9)
	})

	t.Run("ragged matrix is rejected", func(t *testing.T) {
		_, err := CriticWeights([][]float64{{1, 2}, {3}})
		assert.Error(t, err)
	})

	t.Run("empty matrix is rejected", func(t *testing.T) {
		_, err := CriticWeights(nil)
		assert.Error(t, err)
	})
}
