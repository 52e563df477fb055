package mcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpearman(t *testing.T) {
	t.Run("identical rankings correlate at 1", func(t *testing.T) {
		r := []int{3, 1, 4, 2, 5}
		c, err := Spearman(r, r)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, c, 1e-12)
	})

	t.Run("reversed rankings correlate at -1", func(t *testing.T) {
		c, err := Spearman([]int{1, 2, 3}, []int{3, 2, 1})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, c, 1e-12)
	})

	t.Run("symmetric", func(t *testing.T) {
		r1 := []int{1, 3, 2, 5, 4}
		r2 := []int{2, 1, 4, 3, 5}
		a, err := Spearman(r1, r2)
		require.NoError(t, err)
		b, err := Spearman(r2, r1)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("length mismatch is an error", func(t *testing.T) {
		_, err := Spearman([]int{1, 2}, []int{1, 2, 3})
		assert.Error(t, err)
	})
}

func TestWeightedSpearman(t *testing.T) {
	t.Run("identical rankings correlate at 1", func(t *testing.T) {
		r := []int{2, 4, 1, 3}
		c, err := WeightedSpearman(r, r)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, c, 1e-12)
	})

	t.Run("reversed rankings correlate at -1", func(t *testing.T) {
		c, err := WeightedSpearman([]int{1, 2, 3}, []int{3, 2, 1})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, c, 1e-12)
	})

	t.Run("symmetric", func(t *testing.T) {
		r1 := []int{1, 3, 2, 5, 4}
		r2 := []int{2, 1, 4, 3, 5}
		a, err := WeightedSpearman(r1, r2)
		require.NoError(t, err)
		b, err := WeightedSpearman(r2, r1)
		require.NoError(t, err)
		assert.InDelta(t, a, b, 1e-12)
	})

	t.Run("top-rank disagreement costs more than bottom-rank disagreement", func(t *testing.T) {
		base := []int{1, 2, 3, 4}
		topSwap := []int{2, 1, 3, 4}
		bottomSwap := []int{1, 2, 4, 3}

		top, err := WeightedSpearman(base, topSwap)
		require.NoError(t, err)
		bottom, err := WeightedSpearman(base, bottomSwap)
		require.NoError(t, err)

		assert.Less(t, top, bottom)
	})

	t.Run("stays within [-1,1] for rank permutations", func(t *testing.T) {
		r1 := []int{4, 2, 5, 1, 3}
		r2 := []int{5, 3, 1, 4, 2}
		c, err := WeightedSpearman(r1, r2)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c, -1.0)
		assert.LessOrEqual(t, c, 1.0)
	})

	t.Run("length mismatch is an error", func(t *testing.T) {
		_, err := WeightedSpearman([]int{1}, []int{1, 2})
		assert.Error(t, err)
	})
}
