package types

// QueryRequest is the full, explicit input of one engine run. It replaces
// any session-scoped state: the engine holds nothing between calls.
type QueryRequest struct {
	// Years to include, e.g. ["2020", "2021"]. At least one required.
	Years []string `json:"years"`

	// Counties is a list of county names, or ["All"] for every county.
	Counties []string `json:"counties"`

	// Race is a display name filter, or "All"
	Race string `json:"race,omitempty"`

	// Ethnicity is "Hispanic", "Not Hispanic", or "All"
	Ethnicity string `json:"ethnicity,omitempty"`

	// Sex is "Male", "Female", or "All"
	Sex string `json:"sex,omitempty"`

	// Region is a region tier label, or "None"
	Region string `json:"region,omitempty"`

	// AgeGroup names a bracket definition (e.g. "agegroup13"), or "All"
	AgeGroup string `json:"age_group,omitempty"`

	// CustomRanges override AgeGroup entirely when non-empty
	CustomRanges []CustomRange `json:"custom_ranges,omitempty"`

	// GroupBy selects grouping dimensions by name; "All" means totals only
	GroupBy []string `json:"group_by"`

	// IncludeBreakdown adds a per-county block after the combined block
	IncludeBreakdown bool `json:"include_breakdown,omitempty"`

	// Pivot, when set, additionally reshapes the grouped table
	Pivot *PivotRequest `json:"pivot,omitempty"`
}

// PivotRequest configures the optional cross-tabulation step.
type PivotRequest struct {
	// Rows are dimension names forming the pivot row key
	Rows []string `json:"rows"`

	// Column is the dimension name spread across value columns; empty
	// keeps the result ungrouped column-wise
	Column string `json:"column,omitempty"`

	// Values selects value fields ("Count", "Percent"); both by default
	Values []string `json:"values,omitempty"`

	// Reducer for the count field: sum, mean, median, max, min
	Reducer string `json:"reducer,omitempty"`

	// PercentMode is "weighted" (default) or "unweighted"
	PercentMode string `json:"percent_mode,omitempty"`

	// Margins appends "Total" row and column
	Margins bool `json:"margins,omitempty"`

	// SortByTotal sorts rows descending by the grand-total column
	SortByTotal bool `json:"sort_by_total,omitempty"`

	// Stack builds one block per row dimension instead of a composite key
	Stack bool `json:"stack,omitempty"`
}

// FilterSummary echoes the effective filters of a query for export
// preambles and report headers.
type FilterSummary struct {
	Years     []string `json:"years"`
	Counties  []string `json:"counties"`
	Race      string   `json:"race"`
	Ethnicity string   `json:"ethnicity"`
	Sex       string   `json:"sex"`
	Region    string   `json:"region"`
	AgeGroup  string   `json:"age_group"`
	GroupBy   []string `json:"group_by"`
}

// QueryResult is the complete output of one engine run. All terminal and
// empty states are an empty but correctly-shaped table, never nil.
type QueryResult struct {
	// ID is a deterministic identifier derived from the request
	ID string `json:"id"`

	// Table is the grouped long-form output
	Table *GroupedTable `json:"table"`

	// Pivot is present when the request asked for a cross-tabulation
	Pivot *PivotTable `json:"pivot,omitempty"`

	// Filters echoes the effective query parameters
	Filters FilterSummary `json:"filters"`

	// RecordCount is the number of output rows
	RecordCount int `json:"record_count"`

	// TotalPopulation is the summed count over the combined block
	TotalPopulation int `json:"total_population"`

	// Warnings lists non-fatal conditions hit during the run
	Warnings []string `json:"warnings,omitempty"`
}

// PivotTable is the wide-form cross-tabulation output. Headers are already
// flattened to single strings for flat tabular targets.
type PivotTable struct {
	// RowHeaders names the leading label columns
	RowHeaders []string `json:"row_headers"`

	// ValueHeaders names the value columns ("Count | White", ...)
	ValueHeaders []string `json:"value_headers"`

	// Rows holds one entry per distinct row-dimension combination
	Rows []PivotRow `json:"rows"`

	// Warnings lists non-fatal conditions hit while reshaping
	Warnings []string `json:"warnings,omitempty"`
}

// PivotRow is one row of a pivot table: its labels plus one cell per value
// header. Cells holding no source rows are nil.
type PivotRow struct {
	Labels []string   `json:"labels"`
	Cells  []*float64 `json:"cells"`
}
