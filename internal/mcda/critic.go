package mcda

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CriticWeights derives objective criterion weights from the decision matrix
// using the CRITIC method: min-max normalize every column, then combine each
// column's standard deviation (discriminating power) with its conflict with
// the other columns, sum(1 - pearson), and normalize onto the unit simplex.
//
// A zero-variance column carries no information and gets weight 0. Its
// correlation with other columns is undefined, so it is taken as 0 there.
// If every column has zero variance the weights degenerate to uniform.
func CriticWeights(matrix [][]float64) ([]float64, error) {
	rows, cols, err := validateMatrix(matrix)
	if err != nil {
		return nil, err
	}
	if rows < 2 {
		// A single alternative discriminates nothing either way.
		return uniformWeights(cols), nil
	}

	// CRITIC always works on its own min-max scaling with every column
	// treated as benefit, independent of any caller-side normalization.
	normalized := MinMaxNormalizer{}.Normalize(matrix, allBenefit(cols))

	columns := make([][]float64, cols)
	stds := make([]float64, cols)
	for j := 0; j < cols; j++ {
		columns[j] = column(normalized, j)
		stds[j] = stat.PopStdDev(columns[j], nil)
	}

	importance := make([]float64, cols)
	for j := 0; j < cols; j++ {
		conflict := 0.0
		for k := 0; k < cols; k++ {
			corr := 0.0
			if stds[j] > 0 && stds[k] > 0 {
				corr = stat.Correlation(columns[j], columns[k], nil)
			}
			conflict += 1 - corr
		}
		importance[j] = stds[j] * conflict
	}

	total := floats.Sum(importance)
	if total == 0 {
		return uniformWeights(cols), nil
	}
	floats.Scale(1/total, importance)
	return importance, nil
}

func uniformWeights(cols int) []float64 {
	weights := make([]float64, cols)
	for j := range weights {
		weights[j] = 1 / float64(cols)
	}
	return weights
}
