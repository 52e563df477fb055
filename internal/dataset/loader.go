// Package dataset loads and validates the per-period decision matrices the
// ranking pipeline consumes. Datasets arrive either as a directory of CSV
// files (one entity list plus one decision matrix per period) or inline over
// the API; both paths go through the same shape validation before any
// computation starts.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ZanzyTHEbar/country-rank-o-meter/internal/types"
)

// EntityFile is the CSV listing the ranked entities, one per row under the
// Symbol column.
const EntityFile = "country_names.csv"

const entityColumn = "Symbol"
const indexColumn = "Country"

// Dataset is a fully validated multi-period decision problem.
type Dataset struct {
	Entities   []string
	Criteria   []string
	Periods    []string
	Directions []int

	// Matrices holds one entities x criteria decision matrix per period,
	// aligned with Periods.
	Matrices [][][]float64
}

// Load reads a dataset directory: the entity list from country_names.csv and
// one dataset_<period>.csv per configured period. Any shape problem is fatal
// and nothing partial is returned.
func Load(dir string, periods []string, directions []int) (*Dataset, error) {
	entities, err := loadEntities(filepath.Join(dir, EntityFile))
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Entities:   entities,
		Periods:    periods,
		Directions: directions,
	}

	for _, period := range periods {
		path := filepath.Join(dir, "dataset_"+period+".csv")
		criteria, matrix, err := loadMatrix(path, entities)
		if err != nil {
			return nil, err
		}
		if ds.Criteria == nil {
			ds.Criteria = criteria
		} else if len(criteria) != len(ds.Criteria) {
			return nil, fmt.Errorf("dataset %s: %d criteria, expected %d as in earlier periods",
				path, len(criteria), len(ds.Criteria))
		}
		ds.Matrices = append(ds.Matrices, matrix)
	}

	if err := ds.validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// FromInline builds a dataset from an API-supplied payload.
func FromInline(in *types.InlineDataset) (*Dataset, error) {
	if in == nil {
		return nil, fmt.Errorf("inline dataset is empty")
	}
	ds := &Dataset{
		Entities:   in.Entities,
		Criteria:   in.Criteria,
		Periods:    in.Periods,
		Directions: in.Directions,
		Matrices:   in.Matrices,
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// validate enforces the cross-period shape invariants: consistent dimensions,
// a direction value for every criterion, and finite entries everywhere.
func (d *Dataset) validate() error {
	if len(d.Entities) == 0 {
		return fmt.Errorf("dataset has no entities")
	}
	if len(d.Periods) == 0 {
		return fmt.Errorf("dataset has no periods")
	}
	if len(d.Criteria) == 0 {
		return fmt.Errorf("dataset has no criteria")
	}
	if len(d.Matrices) != len(d.Periods) {
		return fmt.Errorf("dataset has %d matrices for %d periods", len(d.Matrices), len(d.Periods))
	}
	if len(d.Directions) != len(d.Criteria) {
		return fmt.Errorf("direction vector has %d entries for %d criteria", len(d.Directions), len(d.Criteria))
	}
	for j, dir := range d.Directions {
		if dir != 1 && dir != -1 {
			return fmt.Errorf("direction %d is %d, must be +1 or -1", j, dir)
		}
	}
	for p, matrix := range d.Matrices {
		if len(matrix) != len(d.Entities) {
			return fmt.Errorf("period %s: %d rows for %d entities", d.Periods[p], len(matrix), len(d.Entities))
		}
		for i, row := range matrix {
			if len(row) != len(d.Criteria) {
				return fmt.Errorf("period %s: row %d has %d values for %d criteria", d.Periods[p], i, len(row), len(d.Criteria))
			}
			for j, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("period %s: entry [%d][%d] is not finite", d.Periods[p], i, j)
				}
			}
		}
	}
	return nil
}

func loadEntities(path string) ([]string, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("entity file %s has no rows", path)
	}

	col := -1
	for j, name := range records[0] {
		if name == entityColumn {
			col = j
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("entity file %s has no %q column", path, entityColumn)
	}

	entities := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		entities = append(entities, record[col])
	}
	return entities, nil
}

func loadMatrix(path string, entities []string) (criteria []string, matrix [][]float64, err error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("dataset %s has no rows", path)
	}

	header := records[0]
	if len(header) < 2 || header[0] != indexColumn {
		return nil, nil, fmt.Errorf("dataset %s must start with a %q column followed by criteria", path, indexColumn)
	}
	criteria = header[1:]

	rows := records[1:]
	if len(rows) != len(entities) {
		return nil, nil, fmt.Errorf("dataset %s has %d rows for %d entities", path, len(rows), len(entities))
	}

	matrix = make([][]float64, len(rows))
	for i, record := range rows {
		if record[0] != entities[i] {
			return nil, nil, fmt.Errorf("dataset %s row %d is %q, expected %q: entity order must match %s",
				path, i, record[0], entities[i], EntityFile)
		}
		matrix[i] = make([]float64, len(criteria))
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("dataset %s entry [%d][%d] %q is not numeric: %w", path, i, j, field, err)
			}
			matrix[i][j] = v
		}
	}
	return criteria, matrix, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}
