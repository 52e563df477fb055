package mcda

import "fmt"

// Spearman computes the rank correlation between two equal-length rank
// vectors using the closed form 1 - 6*sum(d^2)/(n*(n^2-1)). It is symmetric,
// bounded by [-1,1] for valid rank permutations and equals 1 for identical
// rankings. Vectors shorter than two entries correlate trivially at 1.
func Spearman(r1, r2 []int) (float64, error) {
	n := len(r1)
	if len(r2) != n {
		return 0, fmt.Errorf("rank vectors have different lengths: %d and %d", n, len(r2))
	}
	if n < 2 {
		return 1, nil
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := float64(r1[i] - r2[i])
		sum += d * d
	}
	fn := float64(n)
	return 1 - (6*sum)/(fn*(fn*fn-1)), nil
}

// WeightedSpearman computes the rank correlation variant that penalizes
// disagreements at the top of the rankings more than at the bottom:
//
//	1 - 6*sum(d^2 * ((n-r1+1) + (n-r2+1))) / (n^4 + n^3 - n^2 - n)
//
// Like Spearman it is symmetric, equals 1 for identical rankings and stays
// within [-1,1] for rank permutations.
func WeightedSpearman(r1, r2 []int) (float64, error) {
	n := len(r1)
	if len(r2) != n {
		return 0, fmt.Errorf("rank vectors have different lengths: %d and %d", n, len(r2))
	}
	if n < 2 {
		return 1, nil
	}

	fn := float64(n)
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(r1[i] - r2[i])
		weight := (fn - float64(r1[i]) + 1) + (fn - float64(r2[i]) + 1)
		sum += d * d * weight
	}
	denominator := fn*fn*fn*fn + fn*fn*fn - fn*fn - fn
	return 1 - (6*sum)/denominator, nil
}
