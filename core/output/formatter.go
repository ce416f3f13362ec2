// Package output renders query results for display and export.
package output

import (
	"io"

	"census-report/core/types"
	"census-report/internal/errors"
)

// Format identifies an output format.
type Format string

const (
	// FormatTable is a human-readable terminal table
	FormatTable Format = "table"

	// FormatCSV is delimited text with a metadata preamble
	FormatCSV Format = "csv"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter renders a query result in one format.
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the result
	Render(w io.Writer, result *types.QueryResult) error
}

// ForFormat resolves a formatter by name.
func ForFormat(format string) (Formatter, error) {
	switch Format(format) {
	case FormatTable, "":
		return &TableFormatter{}, nil
	case FormatCSV:
		return &CSVFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	}
	return nil, errors.Newf(errors.TypeInput, "unknown output format %q", format)
}
