// Package aggregate turns row-level count records into grouped summary
// tables with percentages. The aggregator is stateless: every call reads
// its inputs, computes fresh output, and holds nothing back.
package aggregate

import (
	"github.com/shopspring/decimal"

	"census-report/core/bracket"
	"census-report/core/determinism"
	"census-report/core/region"
	"census-report/core/types"
)

// Options carries the per-call collaborators and labels.
type Options struct {
	// Year stamps every output row
	Year string

	// CountyLabel stamps rows when County is not a grouping dimension
	// (e.g. "All Counties", "Selected Counties", or one county's name)
	CountyLabel string

	// Counties resolves county codes to names
	Counties *types.CountyMap

	// Regions classifies county codes when Region is requested
	Regions *region.Sets

	// CustomRanges select ad-hoc age buckets; they override Exprs
	CustomRanges []types.CustomRange

	// Exprs are the compiled implicit expressions of a named bracket
	// definition, used when Age is requested and no custom ranges exist
	Exprs []bracket.Expr
}

// groupKey identifies one output group. Only the fields of requested
// dimensions are populated, so unrequested dimensions never split groups.
type groupKey struct {
	county    int
	region    string
	ageBucket string
	race      string
	ethnicity string
	sex       string
}

// denomKey identifies one denominator partition. Year is constant within
// a call; County, Region and AgeBucket participate when requested.
// Race, Ethnicity and Sex never do: their percentages are relative to the
// enclosing structural partition, not to each other.
type denomKey struct {
	county    int
	region    string
	ageBucket string
}

// Schema returns the deterministic output column order for a dimension
// set: county identity first, then Region/AgeGroup/Race/Ethnicity/Sex as
// requested, then Count, Percent, Year.
func Schema(dims []types.Dimension) []types.Column {
	cols := []types.Column{}
	if types.HasDimension(dims, types.DimCounty) {
		cols = append(cols, types.ColCountyCode, types.ColCountyName)
	} else {
		cols = append(cols, types.ColCounty)
	}
	for _, d := range []types.Dimension{types.DimRegion, types.DimAge, types.DimRace, types.DimEthnicity, types.DimSex} {
		if types.HasDimension(dims, d) {
			cols = append(cols, types.DimensionColumn(d))
		}
	}
	return append(cols, types.ColCount, types.ColPercent, types.ColYear)
}

// Aggregate groups records by the requested dimensions and computes
// percentages against the denominator partition. Degenerate inputs (no
// records, zero total count) return an empty table with the same schema a
// non-empty run would produce.
func Aggregate(records []types.Record, dims []types.Dimension, opts Options) *types.GroupedTable {
	table := &types.GroupedTable{Columns: Schema(dims)}

	total := 0
	for _, rec := range records {
		total += rec.Count
	}
	if len(records) == 0 || total == 0 {
		return table
	}

	if len(dims) == 0 {
		table.Rows = []types.GroupedRow{{
			County:  opts.CountyLabel,
			Count:   total,
			Percent: 100.0,
			Year:    opts.Year,
		}}
		return table
	}

	includeAge := types.HasDimension(dims, types.DimAge)
	buckets := bracket.Resolve(records, bracket.Selection{
		IncludeAge: includeAge,
		Custom:     opts.CustomRanges,
		Exprs:      opts.Exprs,
	})

	sums := make(map[groupKey]int)
	for i, rec := range records {
		key := groupKey{}
		if types.HasDimension(dims, types.DimCounty) {
			key.county = rec.County
		}
		if types.HasDimension(dims, types.DimRegion) && opts.Regions != nil {
			key.region = opts.Regions.Classify(rec.County)
		}
		if includeAge {
			key.ageBucket = buckets[i]
		}
		if types.HasDimension(dims, types.DimRace) {
			key.race = rec.Race
		}
		if types.HasDimension(dims, types.DimEthnicity) {
			key.ethnicity = rec.Ethnicity
		}
		if types.HasDimension(dims, types.DimSex) {
			key.sex = rec.Sex
		}
		sums[key] += rec.Count
	}

	denoms := make(map[denomKey]int)
	for key, count := range sums {
		denoms[partitionOf(key, dims)] += count
	}

	rows := make([]types.GroupedRow, 0, len(sums))
	for key, count := range sums {
		row := types.GroupedRow{
			Count: count,
			Year:  opts.Year,
		}
		if types.HasDimension(dims, types.DimCounty) {
			row.CountyCode = key.county
			row.CountyName = types.CountyByCode(key.county, opts.Counties).Name()
		} else {
			row.County = opts.CountyLabel
		}
		if types.HasDimension(dims, types.DimRegion) {
			row.Region = key.region
		}
		if includeAge {
			row.AgeBucket = key.ageBucket
		}
		if types.HasDimension(dims, types.DimRace) {
			row.Race = types.RaceDisplay(key.race)
		}
		if types.HasDimension(dims, types.DimEthnicity) {
			row.Ethnicity = key.ethnicity
		}
		if types.HasDimension(dims, types.DimSex) {
			row.Sex = key.sex
		}
		row.Percent = percent(count, denoms[partitionOf(key, dims)])
		rows = append(rows, row)
	}

	sortRows(rows, table.Columns)
	table.Rows = rows
	return table
}

// partitionOf projects a group key onto its denominator partition.
func partitionOf(key groupKey, dims []types.Dimension) denomKey {
	d := denomKey{}
	if types.HasDimension(dims, types.DimCounty) {
		d.county = key.county
	}
	if types.HasDimension(dims, types.DimRegion) {
		d.region = key.region
	}
	if types.HasDimension(dims, types.DimAge) {
		d.ageBucket = key.ageBucket
	}
	return d
}

// percent computes count/denominator as a percentage rounded to one
// decimal. A zero denominator reports 0.0, never NaN.
func percent(count, denominator int) float64 {
	if denominator <= 0 {
		return 0.0
	}
	p := decimal.NewFromInt(int64(count)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(denominator)), 8).
		Round(1)
	f, _ := p.Float64()
	return f
}

// sortRows orders rows by their rendered column values in schema order,
// with county codes compared numerically.
func sortRows(rows []types.GroupedRow, cols []types.Column) {
	determinism.SortSlice(rows, func(a, b types.GroupedRow) bool {
		for _, c := range cols {
			switch c {
			case types.ColCount, types.ColPercent:
				continue
			case types.ColCountyCode:
				if a.CountyCode != b.CountyCode {
					return a.CountyCode < b.CountyCode
				}
			default:
				av, bv := a.Value(c), b.Value(c)
				if av != bv {
					return av < bv
				}
			}
		}
		return false
	})
}
