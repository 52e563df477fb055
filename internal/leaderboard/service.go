// Package leaderboard serves the blended final ranking of the most recent
// run, with a TTL cache in front of the database and optional periodic
// refresh.
package leaderboard

import (
	"log/slog"
	"time"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/database"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

// Service handles leaderboard queries.
type Service struct {
	repo  *database.Repository
	cache *Cache
	stop  chan struct{}
}

// NewService creates a leaderboard service with the given cache TTL.
func NewService(repo *database.Repository, cacheTTL time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: NewCache(cacheTTL),
		stop:  make(chan struct{}),
	}
}

// GetLeaderboard returns the latest final ranking, top `limit` entries
// (limit <= 0 returns everything). The full ranking is cached until the TTL
// expires or a new run invalidates it; any limit is served by slicing it.
func (s *Service) GetLeaderboard(limit int) (*types.LeaderboardResponse, error) {
	full, ok := s.cache.Get()
	if !ok {
		var err error
		full, err = s.loadFull()
		if err != nil {
			return nil, err
		}
		s.cache.Set(full)
	}
	return truncate(full, limit), nil
}

func (s *Service) loadFull() (*types.LeaderboardResponse, error) {
	runID, rankings, err := s.repo.LatestFinalRanking(0)
	if err != nil {
		return nil, err
	}

	response := &types.LeaderboardResponse{
		RunID:   runID,
		Entries: make([]types.LeaderboardEntry, 0, len(rankings)),
		Total:   len(rankings),
	}
	for _, fr := range rankings {
		response.Entries = append(response.Entries, types.LeaderboardEntry{
			Entity:      fr.Entity,
			Rank:        fr.Rank,
			Score:       fr.Score,
			Variability: fr.Variability,
			Direction:   fr.Direction,
		})
		response.CreatedAt = fr.CreatedAt
	}
	return response, nil
}

// truncate returns a copy of the full response holding the top limit
// entries. The cached response itself is never handed out for mutation.
func truncate(full *types.LeaderboardResponse, limit int) *types.LeaderboardResponse {
	entries := full.Entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return &types.LeaderboardResponse{
		RunID:     full.RunID,
		Entries:   entries,
		Total:     len(entries),
		CreatedAt: full.CreatedAt,
	}
}

// Invalidate drops the cached ranking so the next query sees a fresh run.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

// CacheStats exposes cache statistics for the health endpoint.
func (s *Service) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}

// StartAutoRefresh re-primes the full-ranking cache on an interval until
// Stop is called; every query limit is then served from the refreshed list.
// Failures are logged and retried on the next tick.
func (s *Service) StartAutoRefresh(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.cache.Invalidate()
				if _, err := s.GetLeaderboard(0); err != nil {
					if !database.IsNotFound(err) {
						slog.Error("Leaderboard refresh failed", "error", err)
					}
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the auto-refresh loop.
func (s *Service) Stop() {
	close(s.stop)
}
