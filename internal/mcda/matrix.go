package mcda

import (
	"fmt"
	"math"
)

// validateMatrix checks that the decision matrix is non-empty, rectangular
// and contains only finite values. Shape problems are fatal: they indicate
// a broken dataset, not a numeric edge case.
func validateMatrix(matrix [][]float64) (rows, cols int, err error) {
	rows = len(matrix)
	if rows == 0 {
		return 0, 0, fmt.Errorf("decision matrix has no rows")
	}
	cols = len(matrix[0])
	if cols == 0 {
		return 0, 0, fmt.Errorf("decision matrix has no columns")
	}
	for i, row := range matrix {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("decision matrix is ragged: row %d has %d columns, expected %d", i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("decision matrix entry [%d][%d] is not finite", i, j)
			}
		}
	}
	return rows, cols, nil
}

// validateDirections checks the criterion direction vector against the
// criteria count.
func validateDirections(directions []int, cols int) error {
	if len(directions) != cols {
		return fmt.Errorf("direction vector has %d entries, expected %d", len(directions), cols)
	}
	for j, d := range directions {
		if d != Benefit && d != Cost {
			return fmt.Errorf("direction %d is %d, must be %d (benefit) or %d (cost)", j, d, Benefit, Cost)
		}
	}
	return nil
}

// column copies column j of a rectangular matrix.
func column(matrix [][]float64, j int) []float64 {
	col := make([]float64, len(matrix))
	for i := range matrix {
		col[i] = matrix[i][j]
	}
	return col
}
