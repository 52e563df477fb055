package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/database"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

func testService(t *testing.T) (*Service, *database.Repository) {
	t.Helper()
	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := database.NewRepository(db)
	return NewService(repo, time.Minute), repo
}

func storedRun(t *testing.T, repo *database.Repository, id string) {
	t.Helper()
	require.NoError(t, repo.SaveRun(&types.RunResult{
		ID:       id,
		Entities: []string{"AT", "BE", "HR"},
		Criteria: []string{"C1"},
		Periods:  []string{"2020"},
		Temporal: types.TemporalResult{
			Variability:     []float64{0.1, 0.2, 0.05},
			Directions:      []float64{1, -1, 1},
			DirectionLabels: []string{"ascending", "descending", "ascending"},
			Baseline:        []float64{0.5, 0.6, 0.7},
			FinalScores:     []float64{0.6, 0.4, 0.75},
			FinalRanks:      []int{2, 3, 1},
		},
		CreatedAt: time.Now(),
	}))
}

func TestServiceGetLeaderboard(t *testing.T) {
	t.Run("empty database surfaces not found", func(t *testing.T) {
		service, _ := testService(t)
		_, err := service.GetLeaderboard(0)
		require.Error(t, err)
		assert.True(t, database.IsNotFound(err))
	})

	t.Run("entries come back ordered by rank", func(t *testing.T) {
		service, repo := testService(t)
		storedRun(t, repo, "run-1")

		response, err := service.GetLeaderboard(0)
		require.NoError(t, err)
		require.Len(t, response.Entries, 3)
		assert.Equal(t, "HR", response.Entries[0].Entity)
		assert.Equal(t, 1, response.Entries[0].Rank)
		assert.Equal(t, "BE", response.Entries[2].Entity)
	})

	t.Run("limit truncates the response", func(t *testing.T) {
		service, repo := testService(t)
		storedRun(t, repo, "run-1")

		response, err := service.GetLeaderboard(1)
		require.NoError(t, err)
		require.Len(t, response.Entries, 1)
		assert.Equal(t, "HR", response.Entries[0].Entity)
	})

	t.Run("full-list prime serves limited queries from cache", func(t *testing.T) {
		service, repo := testService(t)
		storedRun(t, repo, "run-1")

		// The refresh loop primes with limit 0.
		primed, err := service.GetLeaderboard(0)
		require.NoError(t, err)
		require.Equal(t, "run-1", primed.RunID)

		// A new run without invalidation: a limited query must still be
		// answered by the primed cache, not a fresh database read.
		storedRun(t, repo, "run-2")
		limited, err := service.GetLeaderboard(2)
		require.NoError(t, err)
		assert.Equal(t, "run-1", limited.RunID)
		require.Len(t, limited.Entries, 2)
		assert.Equal(t, "HR", limited.Entries[0].Entity)
		assert.Equal(t, 2, limited.Total)
	})

	t.Run("cache serves repeated queries until invalidated", func(t *testing.T) {
		service, repo := testService(t)
		storedRun(t, repo, "run-1")

		first, err := service.GetLeaderboard(0)
		require.NoError(t, err)

		storedRun(t, repo, "run-2")
		cached, err := service.GetLeaderboard(0)
		require.NoError(t, err)
		assert.Equal(t, first.RunID, cached.RunID)

		service.Invalidate()
		fresh, err := service.GetLeaderboard(0)
		require.NoError(t, err)
		assert.Equal(t, "run-2", fresh.RunID)
	})
}
