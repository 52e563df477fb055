// Package analysis orchestrates the temporal ranking pipeline: per-period
// CRITIC weighting, TOPSIS scoring and ranking, the DARIA variability
// analysis across periods, the blended final ranking, and the pairwise rank
// correlation matrices used to validate the rankings against each other.
//
// Every stage takes explicit inputs and returns explicit outputs; nothing is
// accumulated in shared state between stages.
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/dataset"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/mcda"
	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

// finalLabel names the blended temporal ranking in summary tables and
// correlation matrices.
const finalLabel = "DARIA-TOPSIS"

// topsisType encodes the TOPSIS output convention for the direction
// analysis: higher preference is better.
const topsisType = 1

// Analyzer runs the full pipeline over a dataset.
type Analyzer struct {
	topsis *mcda.TOPSIS
}

// NewAnalyzer creates an analyzer scoring with TOPSIS over max-normalization,
// the one normalization policy the pipeline currently selects.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		topsis: mcda.NewTOPSIS(mcda.MaxNormalizer{}),
	}
}

// Run executes the pipeline: weight, score and rank each period, feed the
// collected score matrix to DARIA, blend the per-entity mean baseline with
// the variability outcome, rank the blend, and build the correlation
// matrices over all per-period rankings plus the final one.
//
// Period preferences are not scale-comparable across periods (the TOPSIS
// ideal is period-local); the mean baseline inherits that approximation from
// the method's definition.
func (a *Analyzer) Run(ds *dataset.Dataset) (*types.RunResult, error) {
	start := time.Now()

	entities := len(ds.Entities)
	periods := len(ds.Periods)

	result := &types.RunResult{
		ID:        uuid.New().String(),
		Entities:  ds.Entities,
		Criteria:  ds.Criteria,
		Periods:   ds.Periods,
		CreatedAt: start,
	}

	// Per-period scoring. The score matrix collects one row per period.
	scoreMatrix := make([][]float64, periods)
	for p, period := range ds.Periods {
		weights, err := mcda.CriticWeights(ds.Matrices[p])
		if err != nil {
			return nil, fmt.Errorf("period %s: weighting failed: %w", period, err)
		}
		preferences, err := a.topsis.Score(ds.Matrices[p], weights, ds.Directions)
		if err != nil {
			return nil, fmt.Errorf("period %s: scoring failed: %w", period, err)
		}

		result.PeriodResults = append(result.PeriodResults, types.PeriodResult{
			Period:      period,
			Weights:     weights,
			Preferences: preferences,
			Ranks:       mcda.RankPreferences(preferences, true),
		})
		scoreMatrix[p] = preferences
	}
	result.ScoreMatrix = scoreMatrix

	// DARIA: variability magnitude and trend direction per entity.
	variability, err := mcda.EntropyVariability(scoreMatrix)
	if err != nil {
		return nil, fmt.Errorf("variability analysis failed: %w", err)
	}
	directions, labels, err := mcda.Directions(scoreMatrix, topsisType)
	if err != nil {
		return nil, fmt.Errorf("direction analysis failed: %w", err)
	}

	// Baseline is each entity's mean preference across periods.
	baseline := make([]float64, entities)
	series := make([]float64, periods)
	for j := 0; j < entities; j++ {
		for p := 0; p < periods; p++ {
			series[p] = scoreMatrix[p][j]
		}
		baseline[j] = stat.Mean(series, nil)
	}

	finalScores, err := mcda.UpdateEfficiency(baseline, variability, directions)
	if err != nil {
		return nil, fmt.Errorf("efficiency update failed: %w", err)
	}

	result.Temporal = types.TemporalResult{
		Variability:     variability,
		Directions:      directions,
		DirectionLabels: labels,
		Baseline:        baseline,
		FinalScores:     finalScores,
		FinalRanks:      mcda.RankPreferences(finalScores, true),
	}

	result.WeightedSpearman, result.Spearman, err = correlationMatrices(result)
	if err != nil {
		return nil, fmt.Errorf("correlation analysis failed: %w", err)
	}

	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// correlationMatrices builds dense pairwise correlation tables over the
// static label list [per-period rankings..., final ranking], one cell per
// ordered label pair.
func correlationMatrices(result *types.RunResult) (weighted, plain types.CorrelationMatrix, err error) {
	labels := make([]string, 0, len(result.PeriodResults)+1)
	rankings := make([][]int, 0, len(result.PeriodResults)+1)
	for _, pr := range result.PeriodResults {
		labels = append(labels, "TOPSIS "+pr.Period)
		rankings = append(rankings, pr.Ranks)
	}
	labels = append(labels, finalLabel)
	rankings = append(rankings, result.Temporal.FinalRanks)

	n := len(labels)
	weighted = types.CorrelationMatrix{Labels: labels, Values: make([][]float64, n)}
	plain = types.CorrelationMatrix{Labels: labels, Values: make([][]float64, n)}
	for i := 0; i < n; i++ {
		weighted.Values[i] = make([]float64, n)
		plain.Values[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rw, err := mcda.WeightedSpearman(rankings[i], rankings[j])
			if err != nil {
				return weighted, plain, err
			}
			rs, err := mcda.Spearman(rankings[i], rankings[j])
			if err != nil {
				return weighted, plain, err
			}
			weighted.Values[i][j] = rw
			plain.Values[i][j] = rs
		}
	}
	return weighted, plain, nil
}
