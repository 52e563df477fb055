package mcda

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// TOPSIS scores alternatives by their relative closeness to an ideal
// solution. The normalization policy is injected so the whole pipeline can
// run on one consistent scaling.
type TOPSIS struct {
	normalizer Normalizer
}

// NewTOPSIS creates a scorer with the given normalization policy.
// A nil normalizer defaults to max-normalization.
func NewTOPSIS(normalizer Normalizer) *TOPSIS {
	if normalizer == nil {
		normalizer = MaxNormalizer{}
	}
	return &TOPSIS{normalizer: normalizer}
}

// Score computes one preference value in [0,1] per alternative. Higher is
// better regardless of the input criterion directions: the normalizer folds
// cost criteria onto a higher-is-better scale, so the ideal solution is the
// per-column maximum of the weighted normalized matrix and the anti-ideal
// the per-column minimum.
//
// An alternative whose distances to ideal and anti-ideal both vanish (only
// possible for degenerate single-row input) scores 0 rather than NaN.
func (t *TOPSIS) Score(matrix [][]float64, weights []float64, directions []int) ([]float64, error) {
	rows, cols, err := validateMatrix(matrix)
	if err != nil {
		return nil, err
	}
	if err := validateDirections(directions, cols); err != nil {
		return nil, err
	}
	if len(weights) != cols {
		return nil, fmt.Errorf("weight vector has %d entries, expected %d", len(weights), cols)
	}

	weighted := t.normalizer.Normalize(matrix, directions)
	for i := 0; i < rows; i++ {
		floats.Mul(weighted[i], weights)
	}

	ideal := make([]float64, cols)
	antiIdeal := make([]float64, cols)
	for j := 0; j < cols; j++ {
		col := column(weighted, j)
		ideal[j] = floats.Max(col)
		antiIdeal[j] = floats.Min(col)
	}

	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var dPlus, dMinus float64
		for j := 0; j < cols; j++ {
			dPlus += (weighted[i][j] - ideal[j]) * (weighted[i][j] - ideal[j])
			dMinus += (weighted[i][j] - antiIdeal[j]) * (weighted[i][j] - antiIdeal[j])
		}
		dPlus = math.Sqrt(dPlus)
		dMinus = math.Sqrt(dMinus)

		if dPlus+dMinus == 0 {
			scores[i] = 0
			continue
		}
		scores[i] = dMinus / (dPlus + dMinus)
	}
	return scores, nil
}
