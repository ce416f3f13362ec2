// Package keygen synthesizes a normalized, delimiter-joined identifier
// per grouped row, so two reports with identical grouping columns but
// different single-value filters stay distinguishable.
package keygen

import (
	"strconv"
	"strings"

	"census-report/core/types"
)

// ActiveFilters carries the single-value filters of the query that
// produced the table. A dimension filtered to one value rather than
// grouped is injected into the key as a prefix.
type ActiveFilters struct {
	// Race is the race display name, or "All"
	Race string

	// Ethnicity is "Hispanic", "Not Hispanic", or "All"
	Ethnicity string

	// Sex is "Male", "Female", or "All"
	Sex string

	// Region is a tier label, or "None"
	Region string
}

func meaningful(value string) bool {
	return value != "" && value != "All" && value != "None"
}

// keyColumns is the fixed key column order: county identity first, then
// the non-county dimension columns, then Year.
var keyColumns = []types.Column{
	types.ColCounty,
	types.ColCountyCode,
	types.ColCountyName,
	types.ColRegion,
	types.ColAgeBucket,
	types.ColRace,
	types.ColEthnicity,
	types.ColSex,
	types.ColYear,
}

// Attach computes the concatenated key for every row and appends the key
// column to the table schema.
func Attach(table *types.GroupedTable, filters ActiveFilters) {
	if table == nil {
		return
	}

	prefixes := []string{}
	if meaningful(filters.Race) && !table.HasColumn(types.ColRace) {
		prefixes = append(prefixes, Normalize(filters.Race))
	}
	if meaningful(filters.Ethnicity) && !table.HasColumn(types.ColEthnicity) {
		prefixes = append(prefixes, Normalize(filters.Ethnicity))
	}
	if meaningful(filters.Sex) && !table.HasColumn(types.ColSex) {
		prefixes = append(prefixes, Normalize(filters.Sex))
	}
	if meaningful(filters.Region) && !table.HasColumn(types.ColRegion) {
		prefixes = append(prefixes, "Region_"+Normalize(filters.Region))
	}

	for i := range table.Rows {
		tokens := make([]string, 0, len(prefixes)+len(keyColumns))
		tokens = append(tokens, prefixes...)
		for _, col := range keyColumns {
			if !table.HasColumn(col) {
				continue
			}
			tokens = append(tokens, Normalize(table.Rows[i].Value(col)))
		}
		table.Rows[i].Key = strings.Join(tokens, "_")
	}

	if !table.HasColumn(types.ColKey) {
		table.Columns = append(table.Columns, types.ColKey)
	}
}

// Normalize renders a value as a key token: trimmed, dashes unified,
// whitespace collapsed to underscores, anything outside [0-9A-Za-z_-]
// stripped, and numeric values rendered as plain integer text.
func Normalize(value string) string {
	s := strings.TrimSpace(value)

	// Integral numbers lose any floating-point rendering ("12.0" -> "12")
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		s = strconv.FormatInt(int64(f), 10)
	}

	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			b.WriteByte('_')
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z',
			r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
