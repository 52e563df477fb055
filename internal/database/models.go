package database

import "time"

// Run is the stored summary row for one pipeline run.
type Run struct {
	ID            string    `json:"id"`
	EntityCount   int       `json:"entity_count"`
	CriteriaCount int       `json:"criteria_count"`
	PeriodCount   int       `json:"period_count"`
	Periods       string    `json:"periods"` // comma-joined period labels
	ResultJSON    string    `json:"-"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// FinalRanking is one denormalized row of a run's blended final ranking.
type FinalRanking struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	Entity      string    `json:"entity"`
	Rank        int       `json:"rank"`
	Score       float64   `json:"score"`
	Variability float64   `json:"variability"`
	Direction   string    `json:"direction"`
	CreatedAt   time.Time `json:"created_at"`
}
