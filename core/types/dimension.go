package types

import (
	"fmt"
	"strings"
)

// Dimension is a closed enumeration of the grouping dimensions the
// aggregator understands. Grouping columns are resolved through this
// enum rather than free-form string lookups.
type Dimension int

const (
	// DimAge groups by resolved age bucket
	DimAge Dimension = iota

	// DimRace groups by race category
	DimRace

	// DimEthnicity groups by ethnicity
	DimEthnicity

	// DimSex groups by sex
	DimSex

	// DimCounty groups by county code
	DimCounty

	// DimRegion groups by resolved region tier
	DimRegion
)

// dimensionNames is the canonical spelling used in query parameters.
var dimensionNames = map[Dimension]string{
	DimAge:       "Age",
	DimRace:      "Race",
	DimEthnicity: "Ethnicity",
	DimSex:       "Sex",
	DimCounty:    "County",
	DimRegion:    "Region",
}

// String returns the canonical dimension name.
func (d Dimension) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// AllDimensions lists every dimension in the fixed output order used for
// grouping columns: Region, AgeBucket, Race, Ethnicity, Sex come after the
// county identity columns.
var AllDimensions = []Dimension{DimCounty, DimRegion, DimAge, DimRace, DimEthnicity, DimSex}

// ParseDimension resolves a query-parameter name to a Dimension.
func ParseDimension(name string) (Dimension, error) {
	for dim, canonical := range dimensionNames {
		if strings.EqualFold(strings.TrimSpace(name), canonical) {
			return dim, nil
		}
	}
	return 0, fmt.Errorf("unknown grouping dimension %q", name)
}

// ParseDimensions resolves a group-by selection. The sentinel "All" means
// totals only (the empty set) and is mutually exclusive with any other
// selection: when present, everything else is discarded.
func ParseDimensions(names []string) ([]Dimension, error) {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "All") {
			return nil, nil
		}
	}
	seen := make(map[Dimension]bool, len(names))
	dims := make([]Dimension, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		dim, err := ParseDimension(name)
		if err != nil {
			return nil, err
		}
		if !seen[dim] {
			seen[dim] = true
			dims = append(dims, dim)
		}
	}
	return dims, nil
}

// HasDimension reports whether dim is in dims.
func HasDimension(dims []Dimension, dim Dimension) bool {
	for _, d := range dims {
		if d == dim {
			return true
		}
	}
	return false
}
