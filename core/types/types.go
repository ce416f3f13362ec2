// Package types defines the shared domain types for the reporting engine.
package types

// Record is one input row of demographic count data. Records are produced
// by the loader once per query and are read-only to the engine.
type Record struct {
	// County is the integer county code (e.g. 31 for Cook)
	County int

	// Year is the estimate vintage, kept as text (e.g. "2020")
	Year string

	// Race is the internal race code (e.g. "TOM", "AIAN")
	Race string

	// Ethnicity is "Hispanic" or "Not Hispanic"
	Ethnicity string

	// Sex is "Male" or "Female"
	Sex string

	// Age is the standard 5-year age code, 1..18
	Age int

	// Count is the population count, never negative
	Count int
}

// CustomRange is an ad-hoc (min,max) pair of age codes supplied per query.
// When any custom ranges are present they override the named age group.
type CustomRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Valid reports whether the range is usable after clamping to [1,18].
func (r CustomRange) Valid() bool {
	return r.Clamp().Min <= r.Clamp().Max
}

// Clamp restricts both bounds to the standard code range [1,18].
func (r CustomRange) Clamp() CustomRange {
	out := r
	if out.Min < 1 {
		out.Min = 1
	}
	if out.Max > 18 {
		out.Max = 18
	}
	return out
}

// Race display name <-> internal code mapping, as published in the
// source census extracts.
var raceDisplayToCode = map[string]string{
	"Two or More Races":                          "TOM",
	"American Indian and Alaska Native":          "AIAN",
	"Black or African American":                  "Black",
	"White":                                      "White",
	"Native Hawaiian and Other Pacific Islander": "NHOPI",
	"Asian":                                      "Asian",
}

var raceCodeToDisplay = func() map[string]string {
	m := make(map[string]string, len(raceDisplayToCode))
	for display, code := range raceDisplayToCode {
		m[code] = display
	}
	return m
}()

// RaceCode maps a display name to its internal code. Unknown names pass
// through unchanged so ad-hoc codes keep working.
func RaceCode(display string) string {
	if code, ok := raceDisplayToCode[display]; ok {
		return code
	}
	return display
}

// RaceDisplay maps an internal race code to its display name. Unknown
// codes pass through unchanged.
func RaceDisplay(code string) string {
	if display, ok := raceCodeToDisplay[code]; ok {
		return display
	}
	return code
}
