// Package loader reads row-level population records from per-year CSV
// extracts. It is the upstream collaborator of the aggregation engine:
// anything downstream assumes the shape it guarantees here.
package loader

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"census-report/core/types"
	"census-report/internal/errors"
	"census-report/internal/logging"
)

// Source supplies records per year. The engine treats the returned slices
// as read-only.
type Source interface {
	// Records loads one year's rows; a missing year yields (nil, nil)
	Records(year string) ([]types.Record, error)

	// Years lists the years the source can supply, sorted
	Years() []string
}

// CSVSource loads "<year> population.csv" files from a data folder.
type CSVSource struct {
	folder string
}

// NewCSVSource creates a source over a data folder.
func NewCSVSource(folder string) *CSVSource {
	return &CSVSource{folder: folder}
}

var yearFilePattern = regexp.MustCompile(`^(\d{4}) population\.csv$`)

// Years scans the folder for year files.
func (s *CSVSource) Years() []string {
	entries, err := os.ReadDir(s.folder)
	if err != nil {
		logging.Warn("cannot list data folder", zap.String("folder", s.folder), zap.Error(err))
		return nil
	}
	years := []string{}
	for _, entry := range entries {
		if m := yearFilePattern.FindStringSubmatch(entry.Name()); m != nil {
			years = append(years, m[1])
		}
	}
	sort.Strings(years)
	return years
}

// Records loads one year's file. Individual malformed Count or Age cells
// coerce to zero; a missing Count or Age column is a contract violation
// and fails hard.
func (s *CSVSource) Records(year string) ([]types.Record, error) {
	path := filepath.Join(s.folder, year+" population.csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("no data file for year", zap.String("year", year))
			return nil, nil
		}
		return nil, errors.Wrap(errors.TypeInput, "opening data file", err).
			WithContext("path", path)
	}
	defer f.Close()

	records, err := Parse(f, year)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return records, nil
}

// Parse reads CSV rows into records. Exposed separately so the API layer
// can ingest uploaded extracts with the same shape guarantees.
func Parse(r io.Reader, year string) ([]types.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.TypeParsing, "reading CSV header", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	countCol, ok := idx["Count"]
	if !ok {
		return nil, errors.Shape("data file has no Count column")
	}
	ageCol, ok := idx["Age"]
	if !ok {
		return nil, errors.Shape("data file has no Age column")
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := []types.Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.TypeParsing, "reading CSV row", err)
		}
		if countCol >= len(row) || ageCol >= len(row) {
			continue
		}

		rec := types.Record{
			Race:      field(row, "Race"),
			Ethnicity: field(row, "Ethnicity"),
			Sex:       field(row, "Sex"),
			Year:      year,
		}
		if y := field(row, "Year"); y != "" {
			rec.Year = y
		}
		rec.County = coerceInt(field(row, "County"))
		rec.Age = coerceInt(row[ageCol])
		rec.Count = coerceInt(row[countCol])
		if rec.Count < 0 {
			rec.Count = 0
		}
		records = append(records, rec)
	}
	return records, nil
}

// coerceInt parses an integer cell, accepting a stray float rendering;
// non-finite and unparseable values coerce to zero.
func coerceInt(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(f)
	}
	return 0
}
