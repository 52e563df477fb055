package mcda

import "gonum.org/v1/gonum/floats"

// Criterion directions. Benefit means higher raw values are better,
// Cost means lower raw values are better.
const (
	Benefit = 1
	Cost    = -1
)

// Normalizer rescales a decision matrix into unit-comparable columns.
// Implementations must map every column onto a "higher is better" scale,
// folding cost criteria in the process, so that downstream scoring can
// treat the per-column maximum as the ideal value.
type Normalizer interface {
	Normalize(matrix [][]float64, directions []int) [][]float64
}

// MaxNormalizer divides benefit columns by their maximum and cost columns
// as min/x. Benefit columns end with max 1; cost columns end with the best
// (lowest-cost) entry at 1 and all others below it.
//
// Zero denominators (an all-zero benefit column, or a zero entry in a cost
// column) produce a normalized value of 0 instead of NaN. Small real
// datasets hit these cases, so they are fallbacks rather than failures.
type MaxNormalizer struct{}

func (MaxNormalizer) Normalize(matrix [][]float64, directions []int) [][]float64 {
	rows := len(matrix)
	if rows == 0 {
		return nil
	}
	cols := len(matrix[0])

	normalized := make([][]float64, rows)
	for i := range normalized {
		normalized[i] = make([]float64, cols)
	}

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = matrix[i][j]
		}
		if directions[j] == Cost {
			min := floats.Min(col)
			for i := 0; i < rows; i++ {
				if col[i] == 0 {
					normalized[i][j] = 0
					continue
				}
				normalized[i][j] = min / col[i]
			}
			continue
		}
		max := floats.Max(col)
		for i := 0; i < rows; i++ {
			if max == 0 {
				normalized[i][j] = 0
				continue
			}
			normalized[i][j] = col[i] / max
		}
	}
	return normalized
}

// MinMaxNormalizer rescales each column with (x-min)/(max-min) for benefit
// criteria and (max-x)/(max-min) for cost criteria. A constant column
// normalizes to all zeros.
type MinMaxNormalizer struct{}

func (MinMaxNormalizer) Normalize(matrix [][]float64, directions []int) [][]float64 {
	rows := len(matrix)
	if rows == 0 {
		return nil
	}
	cols := len(matrix[0])

	normalized := make([][]float64, rows)
	for i := range normalized {
		normalized[i] = make([]float64, cols)
	}

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = matrix[i][j]
		}
		min := floats.Min(col)
		max := floats.Max(col)
		span := max - min
		for i := 0; i < rows; i++ {
			if span == 0 {
				normalized[i][j] = 0
				continue
			}
			if directions[j] == Cost {
				normalized[i][j] = (max - col[i]) / span
			} else {
				normalized[i][j] = (col[i] - min) / span
			}
		}
	}
	return normalized
}

// allBenefit returns a direction vector treating every criterion as benefit.
func allBenefit(cols int) []int {
	dirs := make([]int, cols)
	for j := range dirs {
		dirs[j] = Benefit
	}
	return dirs
}
