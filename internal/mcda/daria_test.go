package mcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropyVariability(t *testing.T) {
	t.Run("two-period series reproduces the entropy formula", func(t *testing.T) {
		// Distribution [0.4, 0.6]: H = 0.673012, ln(2) = 0.693147,
		// variability = 1 - H/ln(2) = 0.029050.
		variability, err := EntropyVariability([][]float64{{0.4}, {0.6}})
		require.NoError(t, err)
		require.Len(t, variability, 1)
		assert.InDelta(t, 0.029050, variability[0], 1e-5)
	})

	t.Run("constant series has zero variability", func(t *testing.T) {
		variability, err := EntropyVariability([][]float64{{0.5, 0.2}, {0.5, 0.2}, {0.5, 0.2}})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, variability[0], 1e-12)
		assert.InDelta(t, 0.0, variability[1], 1e-12)
	})

	t.Run("fully concentrated series has maximal variability", func(t *testing.T) {
		variability, err := EntropyVariability([][]float64{{0}, {1}})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, variability[0], 1e-12)
	})

	t.Run("single period reports zero", func(t *testing.T) {
		variability, err := EntropyVariability([][]float64{{0.3, 0.9}})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, variability)
	})

	t.Run("zero-sum series reports zero", func(t *testing.T) {
		variability, err := EntropyVariability([][]float64{{0}, {0}})
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, variability)
	})

	t.Run("variability is never negative", func(t *testing.T) {
		matrix := [][]float64{
			{0.41, 0.73, 0.22},
			{0.45, 0.68, 0.29},
			{0.39, 0.75, 0.31},
		}
		variability, err := EntropyVariability(matrix)
		require.NoError(t, err)
		for i, v := range variability {
			assert.GreaterOrEqual(t, v, 0.0, "entity %d", i)
		}
	})

	t.Run("ragged matrix is rejected", func(t *testing.T) {
		_, err := EntropyVariability([][]float64{{0.4, 0.5}, {0.6}})
		assert.Error(t, err)
	})
}

func TestDirections(t *testing.T) {
	tests := []struct {
		name           string
		matrix         [][]float64
		methodType     int
		expectedDirs   []float64
		expectedLabels []string
	}{
		{
			name:           "rising series is ascending",
			matrix:         [][]float64{{0.4}, {0.6}},
			methodType:     1,
			expectedDirs:   []float64{1},
			expectedLabels: []string{DirectionAscending},
		},
		{
			name:           "falling series is descending",
			matrix:         [][]float64{{0.6}, {0.4}},
			methodType:     1,
			expectedDirs:   []float64{-1},
			expectedLabels: []string{DirectionDescending},
		},
		{
			name:           "flat series breaks the tie as descending",
			matrix:         [][]float64{{0.5}, {0.5}},
			methodType:     1,
			expectedDirs:   []float64{-1},
			expectedLabels: []string{DirectionDescending},
		},
		{
			name:           "inverted method convention flips the mapping",
			matrix:         [][]float64{{0.4}, {0.6}},
			methodType:     -1,
			expectedDirs:   []float64{-1},
			expectedLabels: []string{DirectionDescending},
		},
		{
			name:           "mixed entities",
			matrix:         [][]float64{{0.4, 0.7}, {0.6, 0.5}},
			methodType:     1,
			expectedDirs:   []float64{1, -1},
			expectedLabels: []string{DirectionAscending, DirectionDescending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs, labels, err := Directions(tt.matrix, tt.methodType)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedDirs, dirs)
			assert.Equal(t, tt.expectedLabels, labels)
		})
	}

	t.Run("invalid method type is rejected", func(t *testing.T) {
		_, _, err := Directions([][]float64{{0.4}, {0.6}}, 0)
		assert.Error(t, err)
	})
}

func TestUpdateEfficiency(t *testing.T) {
	t.Run("improving entities gain, declining entities lose", func(t *testing.T) {
		baseline := []float64{0.5, 0.5}
		variability := []float64{0.1, 0.2}
		directions := []float64{1, -1}

		final, err := UpdateEfficiency(baseline, variability, directions)
		require.NoError(t, err)
		assert.InDelta(t, 0.6, final[0], 1e-12)
		assert.InDelta(t, 0.3, final[1], 1e-12)
	})

	t.Run("composite score may leave the unit interval", func(t *testing.T) {
		final, err := UpdateEfficiency([]float64{0.95, 0.02}, []float64{0.1, 0.1}, []float64{1, -1})
		require.NoError(t, err)
		assert.Greater(t, final[0], 1.0)
		assert.Less(t, final[1], 0.0)
	})

	t.Run("direction bounds the result against the baseline", func(t *testing.T) {
		baseline := []float64{0.31, 0.84, 0.12, 0.99}
		variability := []float64{0.04, 0.0, 0.3, 0.07}
		directions := []float64{1, 1, -1, -1}

		final, err := UpdateEfficiency(baseline, variability, directions)
		require.NoError(t, err)
		for i := range baseline {
			if directions[i] > 0 {
				assert.GreaterOrEqual(t, final[i], baseline[i])
			} else {
				assert.LessOrEqual(t, final[i], baseline[i])
			}
		}
	})

	t.Run("length mismatch is fatal", func(t *testing.T) {
		_, err := UpdateEfficiency([]float64{0.5}, []float64{0.1, 0.2}, []float64{1})
		assert.Error(t, err)
	})
}
