// Package pivot reshapes the aggregator's long-form output into a
// row-by-column cross-tabulation with margins, sorting, and optional
// per-dimension stacking.
package pivot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"census-report/core/determinism"
	"census-report/core/types"
)

// NoColumn is the sentinel for an ungrouped (single column-group) pivot.
const NoColumn types.Column = -1

// Reducer names the aggregation applied to count cells.
type Reducer string

const (
	ReduceSum    Reducer = "sum"
	ReduceMean   Reducer = "mean"
	ReduceMedian Reducer = "median"
	ReduceMax    Reducer = "max"
	ReduceMin    Reducer = "min"
)

// PercentMode selects how percent cells merge multiple source rows.
type PercentMode string

const (
	// PercentWeighted is a count-weighted average: sum(P*C) / sum(C)
	PercentWeighted PercentMode = "weighted"

	// PercentUnweighted is a simple mean of the percent values
	PercentUnweighted PercentMode = "unweighted"
)

// Field names a value field of the source table.
type Field string

const (
	FieldCount   Field = "Count"
	FieldPercent Field = "Percent"
)

// Spec configures one reshape.
type Spec struct {
	// Rows are the columns forming the pivot row key
	Rows []types.Column

	// Column spreads its distinct values across value columns;
	// NoColumn keeps a single column group
	Column types.Column

	// Values selects the value fields; Count and Percent by default
	Values []Field

	// Reducer for count cells; sum by default
	Reducer Reducer

	// PercentMode for percent cells; weighted by default
	PercentMode PercentMode

	// Margins appends a "Total" row and column
	Margins bool

	// SortByTotal sorts rows descending by the grand-total count column
	SortByTotal bool

	// Stack builds one block per row dimension instead of one composite
	// row-key pivot; only meaningful with more than one row dimension
	Stack bool
}

const totalLabel = "Total"

// cell accumulates the source values that fall into one (row, column)
// intersection.
type cell struct {
	counts   []float64
	percents []float64
}

func (c *cell) add(row types.GroupedRow) {
	c.counts = append(c.counts, float64(row.Count))
	c.percents = append(c.percents, row.Percent)
}

func (c *cell) empty() bool { return len(c.counts) == 0 }

// reduceCounts applies the reducer to the cell's count values.
func (c *cell) reduceCounts(r Reducer) float64 {
	if c.empty() {
		return 0
	}
	switch r {
	case ReduceMean:
		sum := 0.0
		for _, v := range c.counts {
			sum += v
		}
		return sum / float64(len(c.counts))
	case ReduceMedian:
		sorted := append([]float64(nil), c.counts...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2
	case ReduceMax:
		max := c.counts[0]
		for _, v := range c.counts[1:] {
			if v > max {
				max = v
			}
		}
		return max
	case ReduceMin:
		min := c.counts[0]
		for _, v := range c.counts[1:] {
			if v < min {
				min = v
			}
		}
		return min
	default:
		sum := 0.0
		for _, v := range c.counts {
			sum += v
		}
		return sum
	}
}

// reducePercents merges the cell's percent values. Weighted mode is a
// count-weighted average, never a naive mean; a cell with zero total
// count reports 0.0.
func (c *cell) reducePercents(mode PercentMode) float64 {
	if c.empty() {
		return 0
	}
	if mode == PercentUnweighted {
		sum := 0.0
		for _, p := range c.percents {
			sum += p
		}
		return round1(sum / float64(len(c.percents)))
	}

	num := decimal.Zero
	den := decimal.Zero
	for i := range c.counts {
		w := decimal.NewFromFloat(c.counts[i])
		num = num.Add(decimal.NewFromFloat(c.percents[i]).Mul(w))
		den = den.Add(w)
	}
	if den.IsZero() {
		return 0
	}
	f, _ := num.DivRound(den, 8).Round(1).Float64()
	return f
}

func round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// Build reshapes a grouped table according to the given Spec. Terminal states
// return an empty but correctly-shaped pivot, never nil.
func Build(table *types.GroupedTable, spec Spec) *types.PivotTable {
	spec = withDefaults(spec)
	warnings := []string{}

	rows, col := resolveAxes(table, spec, &warnings)

	if spec.Stack && len(rows) > 1 {
		return buildStacked(table, rows, col, spec, warnings)
	}
	out := buildSingle(table, rows, col, spec, nil)
	out.Warnings = append(warnings, out.Warnings...)
	return out
}

func withDefaults(spec Spec) Spec {
	if len(spec.Values) == 0 {
		spec.Values = []Field{FieldCount, FieldPercent}
	}
	if spec.Reducer == "" {
		spec.Reducer = ReduceSum
	}
	if spec.PercentMode == "" {
		spec.PercentMode = PercentWeighted
	}
	return spec
}

// resolveAxes drops row dimensions absent from the table and resolves the
// row/column conflict: a dimension selected as both row and column is
// dropped from columns, rows win.
func resolveAxes(table *types.GroupedTable, spec Spec, warnings *[]string) ([]types.Column, types.Column) {
	rows := make([]types.Column, 0, len(spec.Rows))
	for _, r := range spec.Rows {
		if table.HasColumn(r) {
			rows = append(rows, r)
		} else {
			*warnings = append(*warnings, fmt.Sprintf("row dimension %q not present in table, skipped", r.Header()))
		}
	}

	col := spec.Column
	if col != NoColumn && !table.HasColumn(col) {
		*warnings = append(*warnings, fmt.Sprintf("column dimension %q not present in table, ignored", col.Header()))
		col = NoColumn
	}
	for _, r := range rows {
		if col != NoColumn && r == col {
			*warnings = append(*warnings, fmt.Sprintf("dimension %q selected as both row and column; keeping it as a row", col.Header()))
			col = NoColumn
			break
		}
	}
	return rows, col
}

// buildStacked builds one independent single-row-dimension pivot per row
// dimension and concatenates them vertically, tagging each block with its
// source dimension.
func buildStacked(table *types.GroupedTable, rows []types.Column, col types.Column, spec Spec, warnings []string) *types.PivotTable {
	out := &types.PivotTable{
		RowHeaders: []string{"Dimension", "Group"},
		Warnings:   warnings,
	}
	for _, dim := range rows {
		block := buildSingle(table, []types.Column{dim}, col, spec, nil)
		if out.ValueHeaders == nil {
			out.ValueHeaders = block.ValueHeaders
		}
		for _, row := range block.Rows {
			out.Rows = append(out.Rows, types.PivotRow{
				Labels: append([]string{dim.Header()}, row.Labels...),
				Cells:  row.Cells,
			})
		}
		out.Warnings = append(out.Warnings, block.Warnings...)
	}
	return out
}

// buildSingle builds one pivot over the full composite row-key tuple.
func buildSingle(table *types.GroupedTable, rows []types.Column, col types.Column, spec Spec, warnings []string) *types.PivotTable {
	out := &types.PivotTable{Warnings: warnings}
	for _, r := range rows {
		out.RowHeaders = append(out.RowHeaders, r.Header())
	}

	// Distinct column values, sorted for a stable header order.
	colValues := []string{}
	if col != NoColumn {
		seen := map[string]bool{}
		for _, row := range table.Rows {
			v := row.Value(col)
			if !seen[v] {
				seen[v] = true
				colValues = append(colValues, v)
			}
		}
		sort.Strings(colValues)
	} else {
		colValues = []string{""}
	}

	// Accumulate cells per (row tuple, column value), keeping row order
	// of first appearance; the source table is already deterministic.
	type rowEntry struct {
		labels []string
		cells  map[string]*cell
		all    cell // row margin accumulator across all column values
	}
	entries := []*rowEntry{}
	index := map[string]*rowEntry{}
	colTotals := map[string]*cell{}
	grand := &cell{}

	for _, src := range table.Rows {
		labels := make([]string, len(rows))
		for i, r := range rows {
			labels[i] = src.Value(r)
		}
		key := strings.Join(labels, "\x1f")
		entry, ok := index[key]
		if !ok {
			entry = &rowEntry{labels: labels, cells: map[string]*cell{}}
			index[key] = entry
			entries = append(entries, entry)
		}

		cv := ""
		if col != NoColumn {
			cv = src.Value(col)
		}
		if entry.cells[cv] == nil {
			entry.cells[cv] = &cell{}
		}
		entry.cells[cv].add(src)
		entry.all.add(src)

		if colTotals[cv] == nil {
			colTotals[cv] = &cell{}
		}
		colTotals[cv].add(src)
		grand.add(src)
	}

	// Flattened value headers: one group per value field, one column per
	// distinct column value, joined by " | " for flat tabular targets.
	headerCols := append([]string(nil), colValues...)
	if spec.Margins {
		headerCols = append(headerCols, totalLabel)
	}
	for _, field := range spec.Values {
		for _, cv := range headerCols {
			if col == NoColumn && cv == "" {
				out.ValueHeaders = append(out.ValueHeaders, string(field))
			} else {
				out.ValueHeaders = append(out.ValueHeaders, string(field)+" | "+cv)
			}
		}
	}

	renderCell := func(c *cell, field Field) *float64 {
		if c == nil || c.empty() {
			return nil
		}
		var v float64
		if field == FieldCount {
			v = c.reduceCounts(spec.Reducer)
		} else {
			v = c.reducePercents(spec.PercentMode)
		}
		return &v
	}

	if spec.SortByTotal {
		determinism.SortSlice(entries, func(a, b *rowEntry) bool {
			return a.all.reduceCounts(spec.Reducer) > b.all.reduceCounts(spec.Reducer)
		})
	}

	for _, entry := range entries {
		row := types.PivotRow{Labels: entry.labels}
		for _, field := range spec.Values {
			for _, cv := range colValues {
				row.Cells = append(row.Cells, renderCell(entry.cells[cv], field))
			}
			if spec.Margins {
				row.Cells = append(row.Cells, renderCell(&entry.all, field))
			}
		}
		out.Rows = append(out.Rows, row)
	}

	if spec.Margins && len(entries) > 0 {
		labels := make([]string, len(rows))
		if len(labels) > 0 {
			labels[0] = totalLabel
		}
		row := types.PivotRow{Labels: labels}
		for _, field := range spec.Values {
			for _, cv := range colValues {
				row.Cells = append(row.Cells, renderCell(colTotals[cv], field))
			}
			row.Cells = append(row.Cells, renderCell(grand, field))
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}
