package types

import "time"

// PeriodResult holds the per-period pipeline outputs: CRITIC weights, TOPSIS
// preferences and the resulting ranking, entity-indexed in dataset order.
type PeriodResult struct {
	Period      string    `json:"period"`
	Weights     []float64 `json:"weights"`
	Preferences []float64 `json:"preferences"`
	Ranks       []int     `json:"ranks"`
}

// TemporalResult holds the DARIA outputs and the blended final scoring.
type TemporalResult struct {
	Variability     []float64 `json:"variability"`
	Directions      []float64 `json:"directions"`
	DirectionLabels []string  `json:"direction_labels"`
	Baseline        []float64 `json:"baseline"`
	FinalScores     []float64 `json:"final_scores"`
	FinalRanks      []int     `json:"final_ranks"`
}

// CorrelationMatrix is a dense labeled matrix of pairwise rank correlations.
// Labels order rows and columns identically.
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// RunResult is the complete output of one temporal ranking run.
type RunResult struct {
	ID               string            `json:"id"`
	Entities         []string          `json:"entities"`
	Criteria         []string          `json:"criteria"`
	Periods          []string          `json:"periods"`
	PeriodResults    []PeriodResult    `json:"period_results"`
	ScoreMatrix      [][]float64       `json:"score_matrix"` // periods x entities
	Temporal         TemporalResult    `json:"temporal"`
	WeightedSpearman CorrelationMatrix `json:"weighted_spearman"`
	Spearman         CorrelationMatrix `json:"spearman"`
	CreatedAt        time.Time         `json:"created_at"`
	DurationMs       int64             `json:"duration_ms"`
}

// RunRequest triggers a ranking run. With no body the configured dataset
// directory is used; an inline dataset bypasses the filesystem entirely.
type RunRequest struct {
	DatasetDir string         `json:"dataset_dir,omitempty"`
	Inline     *InlineDataset `json:"inline,omitempty"`
}

// InlineDataset carries a full dataset in the request body.
type InlineDataset struct {
	Entities   []string      `json:"entities"`
	Criteria   []string      `json:"criteria"`
	Periods    []string      `json:"periods"`
	Directions []int         `json:"directions"`
	Matrices   [][][]float64 `json:"matrices"` // one entities x criteria matrix per period
}

// LeaderboardEntry is one row of the served final ranking.
type LeaderboardEntry struct {
	Entity      string  `json:"entity"`
	Rank        int     `json:"rank"`
	Score       float64 `json:"score"`
	Variability float64 `json:"variability"`
	Direction   string  `json:"direction"`
}

// LeaderboardResponse is the served final ranking of the most recent run.
type LeaderboardResponse struct {
	RunID     string             `json:"run_id"`
	Entries   []LeaderboardEntry `json:"entries"`
	Total     int                `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}
