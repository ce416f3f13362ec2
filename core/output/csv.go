package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"census-report/core/types"
)

// CSVFormatter writes the grouped table as delimited text, preceded by a
// fixed-format metadata preamble describing the query.
type CSVFormatter struct {
	// Now overrides the preamble timestamp; zero means wall clock
	Now time.Time
}

// Format returns the format type
func (f *CSVFormatter) Format() Format { return FormatCSV }

// Render writes the preamble and the table.
func (f *CSVFormatter) Render(w io.Writer, result *types.QueryResult) error {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	preamble := []string{
		"# Population Data Explorer - Export",
		fmt.Sprintf("# Generated on: %s", now.Format("2006-01-02 15:04:05")),
		"# Data Source: U.S. Census Bureau Population Estimates",
		fmt.Sprintf("# Years: %s", strings.Join(result.Filters.Years, ", ")),
		fmt.Sprintf("# Counties: %s", strings.Join(result.Filters.Counties, ", ")),
		fmt.Sprintf("# Race Filter: %s", result.Filters.Race),
		fmt.Sprintf("# Ethnicity: %s", result.Filters.Ethnicity),
		fmt.Sprintf("# Sex: %s", result.Filters.Sex),
		fmt.Sprintf("# Region: %s", result.Filters.Region),
		fmt.Sprintf("# Age Group: %s", result.Filters.AgeGroup),
		fmt.Sprintf("# Group By: %s", orNone(strings.Join(result.Filters.GroupBy, ", "))),
		fmt.Sprintf("# Total Records: %d", result.RecordCount),
		fmt.Sprintf("# Total Population: %d", result.TotalPopulation),
		"#",
		"# Note: Data are official U.S. Census Bureau estimates",
		"#",
	}
	for _, line := range preamble {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(result.Table.Headers()); err != nil {
		return err
	}
	for _, row := range result.Table.Rows {
		record := make([]string, len(result.Table.Columns))
		for i, col := range result.Table.Columns {
			record[i] = row.Value(col)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
