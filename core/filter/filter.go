// Package filter applies pre-aggregation row filters: demographics,
// county membership, region, and age selection.
package filter

import (
	"census-report/core/region"
	"census-report/core/types"
)

// Criteria holds the single-value filters applied before grouping.
// Zero values and the "All"/"None" sentinels leave a filter inactive.
type Criteria struct {
	// Counties is a resolved code set; empty keeps every county
	Counties []int

	// Race is an internal race code, or "All"
	Race string

	// Ethnicity is "Hispanic", "Not Hispanic", or "All"
	Ethnicity string

	// Sex is "Male", "Female", or "All"
	Sex string

	// Region is a tier label, or "None"
	Region string
}

func active(value string) bool {
	return value != "" && value != "All" && value != "None"
}

// Apply filters records by the criteria. The region filter requires an
// exact match on the classified label, so a higher tier's rows never leak
// into a broader tier's aggregate.
func Apply(records []types.Record, c Criteria, regions *region.Sets) []types.Record {
	countySet := make(map[int]bool, len(c.Counties))
	for _, code := range c.Counties {
		countySet[code] = true
	}

	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if active(c.Race) && rec.Race != c.Race {
			continue
		}
		if active(c.Ethnicity) && rec.Ethnicity != c.Ethnicity {
			continue
		}
		if active(c.Sex) && rec.Sex != c.Sex {
			continue
		}
		if active(c.Region) && regions != nil && regions.Classify(rec.County) != c.Region {
			continue
		}
		if len(countySet) > 0 && !countySet[rec.County] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ByCustomRanges keeps rows whose age code falls in any of the ranges
// (a union, unlike bucket assignment which is last-wins).
func ByCustomRanges(records []types.Record, ranges []types.CustomRange) []types.Record {
	if len(ranges) == 0 {
		return records
	}
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		for _, r := range ranges {
			if rec.Age >= r.Min && rec.Age <= r.Max {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// ByExpressions keeps rows matched by any of the explicit age-group
// expressions. Unparseable expressions match nothing.
func ByExpressions(records []types.Record, exprs []string) []types.Record {
	if len(exprs) == 0 {
		return records
	}
	preds := make([]agePredicate, 0, len(exprs))
	for _, expr := range exprs {
		preds = append(preds, parseAgeExpression(expr))
	}
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		for _, pred := range preds {
			if pred(rec.Age) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
