package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"census-report/core/types"
)

// TableFormatter renders a plain-text report: the grouped table with a
// Total line, and the pivot table when present.
type TableFormatter struct{}

// Format returns the format type
func (f *TableFormatter) Format() Format { return FormatTable }

// Render writes the report.
func (f *TableFormatter) Render(w io.Writer, result *types.QueryResult) error {
	fmt.Fprintln(w, "Population Distribution Report")
	fmt.Fprintf(w, "Years: %s   Counties: %s\n",
		strings.Join(result.Filters.Years, ", "),
		strings.Join(result.Filters.Counties, ", "))
	fmt.Fprintf(w, "Race: %s   Ethnicity: %s   Sex: %s   Region: %s   Age Group: %s\n",
		result.Filters.Race, result.Filters.Ethnicity, result.Filters.Sex,
		result.Filters.Region, result.Filters.AgeGroup)
	fmt.Fprintln(w)

	if len(result.Table.Rows) == 0 {
		fmt.Fprintln(w, "No data found.")
		return nil
	}

	headers := result.Table.Headers()
	grid := [][]string{headers}
	for _, row := range result.Table.Rows {
		line := make([]string, len(result.Table.Columns))
		for i, col := range result.Table.Columns {
			line[i] = row.Value(col)
		}
		grid = append(grid, line)
	}

	// Total line: summed count, 100.0% only when anything was counted.
	total := result.Table.TotalCount()
	totalLine := make([]string, len(headers))
	for i, col := range result.Table.Columns {
		switch col {
		case types.ColCount:
			totalLine[i] = strconv.Itoa(total)
		case types.ColPercent:
			if total > 0 {
				totalLine[i] = "100.0"
			} else {
				totalLine[i] = "N/A"
			}
		default:
			if i == 0 {
				totalLine[i] = "Total"
			}
		}
	}
	grid = append(grid, totalLine)

	writeGrid(w, grid)

	if result.Pivot != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Cross-Tabulation")
		renderPivot(w, result.Pivot)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "\nwarning: %s\n", warning)
	}
	return nil
}

func renderPivot(w io.Writer, p *types.PivotTable) {
	headers := append(append([]string{}, p.RowHeaders...), p.ValueHeaders...)
	grid := [][]string{headers}
	for _, row := range p.Rows {
		line := append([]string{}, row.Labels...)
		for _, cell := range row.Cells {
			if cell == nil {
				line = append(line, "-")
			} else {
				line = append(line, strconv.FormatFloat(*cell, 'f', -1, 64))
			}
		}
		grid = append(grid, line)
	}
	writeGrid(w, grid)
	for _, warning := range p.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

// writeGrid pads columns to their widest value.
func writeGrid(w io.Writer, grid [][]string) {
	if len(grid) == 0 {
		return
	}
	widths := make([]int, 0)
	for _, row := range grid {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range grid {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// JSONFormatter writes the full result as indented JSON.
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the result.
func (f *JSONFormatter) Render(w io.Writer, result *types.QueryResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
