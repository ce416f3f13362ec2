package keygen

import (
	"testing"

	"census-report/core/types"
)

// TestNormalize tests key token normalization
func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "Cook", want: "Cook"},
		{name: "spaces to underscores", in: "Not Hispanic", want: "Not_Hispanic"},
		{name: "trimmed", in: "  Male  ", want: "Male"},
		{name: "integral float loses decimal", in: "31.0", want: "31"},
		{name: "plain integer kept", in: "2020", want: "2020"},
		{name: "non-integral float kept as digits", in: "12.5", want: "125"},
		{name: "en dash unified", in: "0–4", want: "0-4"},
		{name: "em dash unified", in: "0—4", want: "0-4"},
		{name: "punctuation stripped", in: "St. Clair", want: "St_Clair"},
		{name: "plus stripped", in: "80+", want: "80"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestAttachGroupedColumns tests that key tokens follow the fixed column
// order regardless of schema order
func TestAttachGroupedColumns(t *testing.T) {
	table := &types.GroupedTable{
		Columns: []types.Column{
			types.ColCounty, types.ColAgeBucket, types.ColRace,
			types.ColCount, types.ColPercent, types.ColYear,
		},
		Rows: []types.GroupedRow{
			{County: "All Counties", AgeBucket: "0-4", Race: "White", Count: 10, Percent: 50.0, Year: "2020"},
		},
	}

	Attach(table, ActiveFilters{Race: "All", Ethnicity: "All", Sex: "All", Region: "None"})

	want := "All_Counties_0-4_White_2020"
	if table.Rows[0].Key != want {
		t.Errorf("expected key %q, got %q", want, table.Rows[0].Key)
	}
	if !table.HasColumn(types.ColKey) {
		t.Error("expected key column appended to schema")
	}
}

// TestAttachFilterPrefixes tests prefix injection for dimensions filtered
// but not grouped
func TestAttachFilterPrefixes(t *testing.T) {
	table := &types.GroupedTable{
		Columns: []types.Column{types.ColCounty, types.ColAgeBucket, types.ColCount, types.ColPercent, types.ColYear},
		Rows: []types.GroupedRow{
			{County: "All Counties", AgeBucket: "65+", Count: 5, Percent: 100.0, Year: "2021"},
		},
	}

	Attach(table, ActiveFilters{
		Race:      "Black or African American",
		Ethnicity: "Not Hispanic",
		Sex:       "All",
		Region:    "Cook County",
	})

	want := "Black_or_African_American_Not_Hispanic_Region_Cook_County_All_Counties_65_2021"
	if table.Rows[0].Key != want {
		t.Errorf("expected key %q, got %q", want, table.Rows[0].Key)
	}
}

// TestAttachGroupedFilterNotPrefixed tests that a filter on a grouped
// dimension is not injected twice
func TestAttachGroupedFilterNotPrefixed(t *testing.T) {
	table := &types.GroupedTable{
		Columns: []types.Column{types.ColCounty, types.ColRace, types.ColCount, types.ColPercent, types.ColYear},
		Rows: []types.GroupedRow{
			{County: "All Counties", Race: "Asian", Count: 3, Percent: 100.0, Year: "2020"},
		},
	}

	Attach(table, ActiveFilters{Race: "Asian"})

	want := "All_Counties_Asian_2020"
	if table.Rows[0].Key != want {
		t.Errorf("expected key %q, got %q", want, table.Rows[0].Key)
	}
}

// TestAttachCountyIdentityColumns tests county code and name token order
func TestAttachCountyIdentityColumns(t *testing.T) {
	table := &types.GroupedTable{
		Columns: []types.Column{
			types.ColCountyCode, types.ColCountyName, types.ColSex,
			types.ColCount, types.ColPercent, types.ColYear,
		},
		Rows: []types.GroupedRow{
			{CountyCode: 31, CountyName: "Cook", Sex: "Female", Count: 9, Percent: 45.0, Year: "2020"},
		},
	}

	Attach(table, ActiveFilters{})

	want := "31_Cook_Female_2020"
	if table.Rows[0].Key != want {
		t.Errorf("expected key %q, got %q", want, table.Rows[0].Key)
	}
}

// TestAttachDeterministic proves two identical tables produce identical keys
func TestAttachDeterministic(t *testing.T) {
	build := func() *types.GroupedTable {
		return &types.GroupedTable{
			Columns: []types.Column{types.ColCounty, types.ColRace, types.ColCount, types.ColPercent, types.ColYear},
			Rows: []types.GroupedRow{
				{County: "All Counties", Race: "White", Count: 1, Percent: 100.0, Year: "2020"},
			},
		}
	}

	a, b := build(), build()
	Attach(a, ActiveFilters{Sex: "Male"})
	Attach(b, ActiveFilters{Sex: "Male"})

	if a.Rows[0].Key != b.Rows[0].Key {
		t.Errorf("keys differ: %q vs %q", a.Rows[0].Key, b.Rows[0].Key)
	}
}
