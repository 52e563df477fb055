// Package report exports a run's tables as CSV files: per-period preferences
// and rankings, the temporal variability table, the blended final scores and
// ranks, the rank summary, and both correlation matrices.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

// Writer exports run results into a target directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteAll exports every table for the run.
func (w *Writer) WriteAll(result *types.RunResult) error {
	writers := []struct {
		file  string
		write func(*types.RunResult) ([][]string, error)
	}{
		{"preferences_t.csv", preferencesTable},
		{"rankings_t.csv", rankingsTable},
		{"scores_t.csv", variabilityTable},
		{"results_final.csv", finalTable},
		{"summary.csv", summaryTable},
		{"correlations_rw.csv", weightedCorrelationTable},
		{"correlations_rs.csv", spearmanCorrelationTable},
	}
	for _, t := range writers {
		records, err := t.write(result)
		if err != nil {
			return fmt.Errorf("building %s: %w", t.file, err)
		}
		if err := w.writeCSV(t.file, records); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeCSV(name string, records [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// preferencesTable is entities x periods of TOPSIS preferences.
func preferencesTable(result *types.RunResult) ([][]string, error) {
	header := append([]string{"Ai"}, result.Periods...)
	records := [][]string{header}
	for i, entity := range result.Entities {
		row := []string{entity}
		for _, pr := range result.PeriodResults {
			row = append(row, formatFloat(pr.Preferences[i]))
		}
		records = append(records, row)
	}
	return records, nil
}

// rankingsTable is entities x periods of per-period ranks.
func rankingsTable(result *types.RunResult) ([][]string, error) {
	header := append([]string{"Ai"}, result.Periods...)
	records := [][]string{header}
	for i, entity := range result.Entities {
		row := []string{entity}
		for _, pr := range result.PeriodResults {
			row = append(row, strconv.Itoa(pr.Ranks[i]))
		}
		records = append(records, row)
	}
	return records, nil
}

// variabilityTable lists each entity's variability magnitude and direction.
func variabilityTable(result *types.RunResult) ([][]string, error) {
	records := [][]string{{"Ai", "Variability", "Direction"}}
	for i, entity := range result.Entities {
		records = append(records, []string{
			entity,
			formatFloat(result.Temporal.Variability[i]),
			result.Temporal.DirectionLabels[i],
		})
	}
	return records, nil
}

// finalTable lists the blended final score and rank per entity.
func finalTable(result *types.RunResult) ([][]string, error) {
	records := [][]string{{"Country", "DARIA-TOPSIS pref", "DARIA-TOPSIS rank"}}
	for i, entity := range result.Entities {
		records = append(records, []string{
			entity,
			formatFloat(result.Temporal.FinalScores[i]),
			strconv.Itoa(result.Temporal.FinalRanks[i]),
		})
	}
	return records, nil
}

// summaryTable is entities x (period rankings + final ranking).
func summaryTable(result *types.RunResult) ([][]string, error) {
	header := []string{"Ai"}
	for _, pr := range result.PeriodResults {
		header = append(header, "TOPSIS "+pr.Period)
	}
	header = append(header, "DARIA-TOPSIS")

	records := [][]string{header}
	for i, entity := range result.Entities {
		row := []string{entity}
		for _, pr := range result.PeriodResults {
			row = append(row, strconv.Itoa(pr.Ranks[i]))
		}
		row = append(row, strconv.Itoa(result.Temporal.FinalRanks[i]))
		records = append(records, row)
	}
	return records, nil
}

func weightedCorrelationTable(result *types.RunResult) ([][]string, error) {
	return correlationTable(result.WeightedSpearman)
}

func spearmanCorrelationTable(result *types.RunResult) ([][]string, error) {
	return correlationTable(result.Spearman)
}

func correlationTable(cm types.CorrelationMatrix) ([][]string, error) {
	if len(cm.Values) != len(cm.Labels) {
		return nil, fmt.Errorf("correlation matrix has %d rows for %d labels", len(cm.Values), len(cm.Labels))
	}
	header := append([]string{""}, cm.Labels...)
	records := [][]string{header}
	for i, label := range cm.Labels {
		row := []string{label}
		for _, v := range cm.Values[i] {
			row = append(row, formatFloat(v))
		}
		records = append(records, row)
	}
	return records, nil
}
