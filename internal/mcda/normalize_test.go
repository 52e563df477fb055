package mcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxNormalizer(t *testing.T) {
	tests := []struct {
		name       string
		matrix     [][]float64
		directions []int
		expected   [][]float64
	}{
		{
			name:       "benefit and cost columns",
			matrix:     [][]float64{{1, 4}, {2, 3}, {3, 2}},
			directions: []int{Benefit, Cost},
			expected: [][]float64{
				{1.0 / 3.0, 0.5},
				{2.0 / 3.0, 2.0 / 3.0},
				{1.0, 1.0},
			},
		},
		{
			name:       "already normalized benefit column is unchanged",
			matrix:     [][]float64{{0.25}, {0.5}, {1.0}},
			directions: []int{Benefit},
			expected:   [][]float64{{0.25}, {0.5}, {1.0}},
		},
		{
			name:       "all-zero benefit column falls back to zeros",
			matrix:     [][]float64{{0, 1}, {0, 2}},
			directions: []int{Benefit, Benefit},
			expected:   [][]float64{{0, 0.5}, {0, 1}},
		},
		{
			name:       "zero entry in cost column falls back to zero",
			matrix:     [][]float64{{0}, {2}},
			directions: []int{Cost},
			expected:   [][]float64{{0}, {0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaxNormalizer{}.Normalize(tt.matrix, tt.directions)
			assert.Equal(t, len(tt.expected), len(result))
			for i := range tt.expected {
				for j := range tt.expected[i] {
					assert.InDelta(t, tt.expected[i][j], result[i][j], 1e-9,
						"entry [%d][%d]", i, j)
				}
			}
		})
	}
}

func TestMinMaxNormalizer(t *testing.T) {
	tests := []struct {
		name       string
		matrix     [][]float64
		directions []int
		expected   [][]float64
	}{
		{
			name:       "benefit column spans 0..1",
			matrix:     [][]float64{{1}, {2}, {3}},
			directions: []int{Benefit},
			expected:   [][]float64{{0}, {0.5}, {1}},
		},
		{
			name:       "cost column is inverted",
			matrix:     [][]float64{{1}, {2}, {3}},
			directions: []int{Cost},
			expected:   [][]float64{{1}, {0.5}, {0}},
		},
		{
			name:       "constant column normalizes to zeros",
			matrix:     [][]float64{{7}, {7}, {7}},
			directions: []int{Benefit},
			expected:   [][]float64{{0}, {0}, {0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MinMaxNormalizer{}.Normalize(tt.matrix, tt.directions)
			for i := range tt.expected {
				for j := range tt.expected[i] {
					assert.InDelta(t, tt.expected[i][j], result[i][j], 1e-9,
						"entry [%d][%d]", i, j)
				}
			}
		})
	}
}

func TestMaxNormalizerPreservesHigherIsBetter(t *testing.T) {
	// Best cost performer (lowest raw value) must end at 1.
	matrix := [][]float64{{4}, {3}, {2}}
	result := MaxNormalizer{}.Normalize(matrix, []int{Cost})

	assert.InDelta(t, 1.0, result[2][0], 1e-9)
	assert.Less(t, result[0][0], result[1][0])
	assert.Less(t, result[1][0], result[2][0])
}
