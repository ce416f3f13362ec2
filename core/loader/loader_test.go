package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"census-report/internal/errors"
)

const sampleCSV = `County,Race,Ethnicity,Sex,Age,Count
31,White,Not Hispanic,Male,1,100
31,Black,Hispanic,Female,7,50
43,White,Not Hispanic,Female,18,25
`

// TestParse tests basic CSV ingestion
func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV), "2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.County != 31 {
		t.Errorf("expected county 31, got %d", first.County)
	}
	if first.Race != "White" || first.Ethnicity != "Not Hispanic" || first.Sex != "Male" {
		t.Errorf("unexpected demographics: %+v", first)
	}
	if first.Age != 1 || first.Count != 100 {
		t.Errorf("expected age 1 count 100, got age %d count %d", first.Age, first.Count)
	}
	if first.Year != "2020" {
		t.Errorf("expected stamped year 2020, got %q", first.Year)
	}
}

// TestParseMissingCountColumn proves a missing Count column fails hard
func TestParseMissingCountColumn(t *testing.T) {
	csv := "County,Race,Age\n31,White,1\n"
	_, err := Parse(strings.NewReader(csv), "2020")
	if err == nil {
		t.Fatal("expected error for missing Count column")
	}
	if !errors.IsType(err, errors.TypeShape) {
		t.Errorf("expected shape error, got %v", err)
	}
}

// TestParseMissingAgeColumn proves a missing Age column fails hard
func TestParseMissingAgeColumn(t *testing.T) {
	csv := "County,Race,Count\n31,White,10\n"
	_, err := Parse(strings.NewReader(csv), "2020")
	if err == nil {
		t.Fatal("expected error for missing Age column")
	}
	if !errors.IsType(err, errors.TypeShape) {
		t.Errorf("expected shape error, got %v", err)
	}
}

// TestParseCellCoercion tests per-cell coercion of malformed values
func TestParseCellCoercion(t *testing.T) {
	csv := `County,Race,Age,Count
31,White,1,abc
31,White,xyz,10
31,White,2,-5
31,White,3,12.0
31,White,NaN,10
31,White,4,+Inf
`
	records, err := Parse(strings.NewReader(csv), "2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}

	if records[0].Count != 0 {
		t.Errorf("malformed count: expected 0, got %d", records[0].Count)
	}
	if records[1].Age != 0 {
		t.Errorf("malformed age: expected 0, got %d", records[1].Age)
	}
	if records[2].Count != 0 {
		t.Errorf("negative count: expected 0, got %d", records[2].Count)
	}
	if records[3].Count != 12 {
		t.Errorf("float count: expected 12, got %d", records[3].Count)
	}
	if records[4].Age != 0 {
		t.Errorf("NaN age: expected 0, got %d", records[4].Age)
	}
	if records[5].Count != 0 {
		t.Errorf("infinite count: expected 0, got %d", records[5].Count)
	}
}

// TestParseYearColumnOverride tests that an explicit Year column wins over
// the stamp
func TestParseYearColumnOverride(t *testing.T) {
	csv := "County,Age,Count,Year\n31,1,10,2019\n31,2,20,\n"
	records, err := Parse(strings.NewReader(csv), "2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Year != "2019" {
		t.Errorf("expected overridden year 2019, got %q", records[0].Year)
	}
	if records[1].Year != "2020" {
		t.Errorf("expected stamped year 2020, got %q", records[1].Year)
	}
}

// TestParseShortRows tests that rows missing the Count or Age cell are
// skipped rather than failing the file
func TestParseShortRows(t *testing.T) {
	csv := "County,Age,Count\n31,1,10\n31\n31,2,20\n"
	records, err := Parse(strings.NewReader(csv), "2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

// TestParseEmpty tests an empty reader
func TestParseEmpty(t *testing.T) {
	records, err := Parse(strings.NewReader(""), "2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

// TestCSVSourceYears tests year discovery from folder contents
func TestCSVSourceYears(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"2021 population.csv",
		"2019 population.csv",
		"notes.txt",
		"population.csv",
		"20 population.csv",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("County,Age,Count\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	source := NewCSVSource(dir)
	years := source.Years()
	if len(years) != 2 || years[0] != "2019" || years[1] != "2021" {
		t.Errorf("expected sorted years [2019 2021], got %v", years)
	}
}

// TestCSVSourceMissingYear tests that a missing year file is not an error
func TestCSVSourceMissingYear(t *testing.T) {
	source := NewCSVSource(t.TempDir())
	records, err := source.Records("2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records != nil {
		t.Errorf("expected nil records, got %v", records)
	}
}

// TestCSVSourceRoundTrip tests loading a written year file
func TestCSVSourceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2020 population.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	source := NewCSVSource(dir)
	records, err := source.Records("2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}
