package mcda

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Direction labels for reporting. The numeric encoding is +1 for ascending
// and -1 for descending.
const (
	DirectionAscending  = "ascending"
	DirectionDescending = "descending"
)

// EntropyVariability measures how much each alternative's preference moved
// across periods. The input matrix has one row per period (time-ordered) and
// one column per alternative.
//
// Each alternative's series is normalized to sum 1 and treated as a
// distribution over periods; the variability is 1 - H/ln(T) where H is the
// Shannon entropy of that distribution. A perfectly stable series is uniform,
// has maximal entropy and variability 0; a volatile series concentrates mass
// in few periods and scores higher. Degenerate inputs (fewer than two
// periods, or a series summing to 0) report variability 0 instead of NaN.
func EntropyVariability(scoreMatrix [][]float64) ([]float64, error) {
	periods, entities, err := validateMatrix(scoreMatrix)
	if err != nil {
		return nil, fmt.Errorf("score matrix: %w", err)
	}

	variability := make([]float64, entities)
	if periods < 2 {
		return variability, nil
	}

	logT := math.Log(float64(periods))
	for j := 0; j < entities; j++ {
		series := column(scoreMatrix, j)
		total := floats.Sum(series)
		if total == 0 {
			continue
		}
		var entropy float64
		for _, v := range series {
			p := v / total
			if p <= 0 {
				continue
			}
			entropy -= p * math.Log(p)
		}
		d := 1 - entropy/logT
		if d < 0 {
			// Floating point noise on near-uniform series.
			d = 0
		}
		variability[j] = d
	}
	return variability, nil
}

// Directions classifies each alternative's trend across periods by comparing
// the last period's score against the first: a strict increase is ascending
// (+1), anything else including a flat series is descending (-1).
//
// methodType encodes the scoring method's convention: +1 when a higher
// preference is better (TOPSIS), -1 for inverted methods, which flips the
// mapping from raw trend to improving/declining.
func Directions(scoreMatrix [][]float64, methodType int) ([]float64, []string, error) {
	periods, entities, err := validateMatrix(scoreMatrix)
	if err != nil {
		return nil, nil, fmt.Errorf("score matrix: %w", err)
	}
	if methodType != 1 && methodType != -1 {
		return nil, nil, fmt.Errorf("method type is %d, must be +1 or -1", methodType)
	}

	directions := make([]float64, entities)
	labels := make([]string, entities)
	for j := 0; j < entities; j++ {
		diff := scoreMatrix[periods-1][j] - scoreMatrix[0][j]
		improving := diff > 0
		if methodType == -1 {
			improving = !improving
		}
		if improving {
			directions[j] = 1
			labels[j] = DirectionAscending
		} else {
			directions[j] = -1
			labels[j] = DirectionDescending
		}
	}
	return directions, labels, nil
}

// UpdateEfficiency blends a baseline preference with the temporal
// variability: an improving alternative gains its variability magnitude, a
// declining one loses it. The result is a composite score and may leave
// [0,1]; downstream ranking only needs the total order.
func UpdateEfficiency(baseline, variability, directions []float64) ([]float64, error) {
	if len(variability) != len(baseline) || len(directions) != len(baseline) {
		return nil, fmt.Errorf("baseline, variability and direction vectors must have equal length (got %d, %d, %d)",
			len(baseline), len(variability), len(directions))
	}
	final := make([]float64, len(baseline))
	for i := range baseline {
		final[i] = baseline[i] + directions[i]*variability[i]
	}
	return final, nil
}
