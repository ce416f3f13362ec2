package types

import "strconv"

// Column is a closed enumeration of the output columns a grouped table can
// carry. Each column has a compile-time accessor into GroupedRow, so no
// code selects columns by free-form string name.
type Column int

const (
	// ColCounty is the caller-supplied county label (county not grouped)
	ColCounty Column = iota

	// ColCountyCode is the county code column (county grouped)
	ColCountyCode

	// ColCountyName is the county name column (county grouped)
	ColCountyName

	// ColRegion is the resolved region tier label
	ColRegion

	// ColAgeBucket is the resolved age bucket label
	ColAgeBucket

	// ColRace is the race display name
	ColRace

	// ColEthnicity is the ethnicity value
	ColEthnicity

	// ColSex is the sex value
	ColSex

	// ColCount is the summed population count
	ColCount

	// ColPercent is the percentage within the denominator partition
	ColPercent

	// ColYear is the estimate year
	ColYear

	// ColKey is the synthesized concatenated key
	ColKey
)

var columnHeaders = map[Column]string{
	ColCounty:     "County",
	ColCountyCode: "County Code",
	ColCountyName: "County Name",
	ColRegion:     "Region",
	ColAgeBucket:  "AgeGroup",
	ColRace:       "Race",
	ColEthnicity:  "Ethnicity",
	ColSex:        "Sex",
	ColCount:      "Count",
	ColPercent:    "Percent",
	ColYear:       "Year",
	ColKey:        "ConcatenatedKey",
}

// Header returns the display header for the column.
func (c Column) Header() string {
	return columnHeaders[c]
}

// DimensionColumn maps a grouping dimension to its output column. County
// expands into code and name columns and is handled separately.
func DimensionColumn(d Dimension) Column {
	switch d {
	case DimAge:
		return ColAgeBucket
	case DimRace:
		return ColRace
	case DimEthnicity:
		return ColEthnicity
	case DimSex:
		return ColSex
	case DimRegion:
		return ColRegion
	}
	return ColCounty
}

// GroupedRow is one output record of the aggregator: the dimension values
// that were requested, the summed count, and the percentage against the
// row's denominator partition.
type GroupedRow struct {
	County     string  `json:"county,omitempty"`
	CountyCode int     `json:"county_code,omitempty"`
	CountyName string  `json:"county_name,omitempty"`
	Region     string  `json:"region,omitempty"`
	AgeBucket  string  `json:"age_group,omitempty"`
	Race       string  `json:"race,omitempty"`
	Ethnicity  string  `json:"ethnicity,omitempty"`
	Sex        string  `json:"sex,omitempty"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
	Year       string  `json:"year"`
	Key        string  `json:"concatenated_key,omitempty"`
}

// Value renders the row's value for a column as text.
func (r GroupedRow) Value(c Column) string {
	switch c {
	case ColCounty:
		return r.County
	case ColCountyCode:
		return strconv.Itoa(r.CountyCode)
	case ColCountyName:
		return r.CountyName
	case ColRegion:
		return r.Region
	case ColAgeBucket:
		return r.AgeBucket
	case ColRace:
		return r.Race
	case ColEthnicity:
		return r.Ethnicity
	case ColSex:
		return r.Sex
	case ColCount:
		return strconv.Itoa(r.Count)
	case ColPercent:
		return strconv.FormatFloat(r.Percent, 'f', 1, 64)
	case ColYear:
		return r.Year
	case ColKey:
		return r.Key
	}
	return ""
}

// GroupedTable is the long-form aggregation output: an ordered column
// schema plus rows. Empty results keep their schema so downstream display
// and export code needs no nil checks.
type GroupedTable struct {
	Columns []Column     `json:"columns"`
	Rows    []GroupedRow `json:"rows"`
}

// HasColumn reports whether the table schema carries the column.
func (t *GroupedTable) HasColumn(c Column) bool {
	for _, col := range t.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// Headers returns the display headers in schema order.
func (t *GroupedTable) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header()
	}
	return headers
}

// TotalCount sums Count over all rows.
func (t *GroupedTable) TotalCount() int {
	total := 0
	for _, row := range t.Rows {
		total += row.Count
	}
	return total
}

// Append concatenates another table's rows. The schemas must already
// agree; blocks produced for one query always share one schema.
func (t *GroupedTable) Append(other *GroupedTable) {
	if other == nil {
		return
	}
	if len(t.Columns) == 0 {
		t.Columns = other.Columns
	}
	t.Rows = append(t.Rows, other.Rows...)
}
