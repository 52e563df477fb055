package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

// Repository provides data access for runs and rankings.
type Repository struct {
	db *DB
}

// NewRepository creates a repository backed by db.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveRun persists a completed run and its denormalized final ranking rows
// in one transaction.
func (r *Repository) SaveRun(result *types.RunResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run result: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, entity_count, criteria_count, period_count, periods, result_json, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, len(result.Entities), len(result.Criteria), len(result.Periods),
		strings.Join(result.Periods, ","), string(resultJSON), result.DurationMs, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	now := time.Now()
	for i, entity := range result.Entities {
		_, err = tx.Exec(`
			INSERT INTO final_rankings (id, run_id, entity, rank, score, variability, direction, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), result.ID, entity,
			result.Temporal.FinalRanks[i], result.Temporal.FinalScores[i],
			result.Temporal.Variability[i], result.Temporal.DirectionLabels[i], now,
		)
		if err != nil {
			return fmt.Errorf("failed to save ranking for %s: %w", entity, err)
		}
	}

	return tx.Commit()
}

// GetRun loads the full stored result for one run. Returns sql.ErrNoRows
// when the run does not exist.
func (r *Repository) GetRun(id string) (*types.RunResult, error) {
	var resultJSON string
	err := r.db.QueryRow(`SELECT result_json FROM runs WHERE id = ?`, id).Scan(&resultJSON)
	if err != nil {
		return nil, err
	}

	var result types.RunResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
	}
	return &result, nil
}

// ListRuns returns run summaries, newest first.
func (r *Repository) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, entity_count, criteria_count, period_count, periods, duration_ms, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.EntityCount, &run.CriteriaCount, &run.PeriodCount,
			&run.Periods, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestFinalRanking returns the blended ranking rows of the most recent
// run, best rank first. Returns sql.ErrNoRows when no run exists yet.
func (r *Repository) LatestFinalRanking(limit int) (string, []FinalRanking, error) {
	var runID string
	err := r.db.QueryRow(`SELECT id FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&runID)
	if err != nil {
		return "", nil, err
	}

	query := `
		SELECT id, run_id, entity, rank, score, variability, direction, created_at
		FROM final_rankings WHERE run_id = ? ORDER BY rank ASC`
	args := []interface{}{runID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to query final ranking: %w", err)
	}
	defer rows.Close()

	var rankings []FinalRanking
	for rows.Next() {
		var fr FinalRanking
		if err := rows.Scan(&fr.ID, &fr.RunID, &fr.Entity, &fr.Rank, &fr.Score,
			&fr.Variability, &fr.Direction, &fr.CreatedAt); err != nil {
			return "", nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		rankings = append(rankings, fr)
	}
	return runID, rankings, rows.Err()
}

// IsNotFound reports whether err means a missing row.
func IsNotFound(err error) bool {
	return err == sql.ErrNoRows
}
