package mcda

import "sort"

// RankPreferences converts a preference vector into ranks 1..m, rank 1 being
// best. With descending=true the highest score ranks first (the TOPSIS
// convention). Ties get distinct ranks in first-seen order: the output is
// always a strict permutation of 1..m, never shared rank values.
func RankPreferences(scores []float64, descending bool) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if descending {
			return scores[order[a]] > scores[order[b]]
		}
		return scores[order[a]] < scores[order[b]]
	})

	ranks := make([]int, len(scores))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}
