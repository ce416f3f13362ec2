// Package engine orchestrates one reporting query end to end: load,
// filter, aggregate, key synthesis, and optional pivoting. The engine is
// stateless across calls; everything a run needs arrives in the request
// and everything it produces leaves in the result.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"census-report/core/aggregate"
	"census-report/core/bracket"
	"census-report/core/determinism"
	"census-report/core/filter"
	"census-report/core/keygen"
	"census-report/core/loader"
	"census-report/core/pivot"
	"census-report/core/refdata"
	"census-report/core/types"
	"census-report/internal/errors"
	"census-report/internal/logging"
)

// Engine runs reporting queries against a record source and reference
// data, both read-only for the duration of a query.
type Engine struct {
	ref    *refdata.Reference
	source loader.Source
	ids    *determinism.IDGenerator
}

// New creates an engine.
func New(ref *refdata.Reference, source loader.Source) *Engine {
	return &Engine{
		ref:    ref,
		source: source,
		ids:    determinism.NewIDGenerator("census-report/query"),
	}
}

// Reference exposes the engine's reference data to thin outer layers.
func (e *Engine) Reference() *refdata.Reference { return e.ref }

// Years lists the years the record source can supply.
func (e *Engine) Years() []string { return e.source.Years() }

// Run executes one query. Identical requests over identical data yield
// bit-identical results.
func (e *Engine) Run(ctx context.Context, req types.QueryRequest) (*types.QueryResult, error) {
	if len(req.Years) == 0 {
		return nil, errors.Input("at least one year is required")
	}
	if len(req.Counties) == 0 {
		return nil, errors.Input("at least one county is required")
	}

	dims, err := types.ParseDimensions(req.GroupBy)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "parsing group-by selection", err)
	}

	warnings := []string{}

	var exprs []bracket.Expr
	var explicit []string
	if len(req.CustomRanges) == 0 && req.AgeGroup != "" && !strings.EqualFold(req.AgeGroup, "All") {
		if def, ok := e.ref.AgeGroup(req.AgeGroup); ok {
			exprs = def.Compiled()
			explicit = def.Explicit
		} else {
			warnings = append(warnings, fmt.Sprintf("unknown age group %q ignored", req.AgeGroup))
			logging.Warn("unknown age group in query", zap.String("age_group", req.AgeGroup))
		}
	}

	run := runState{
		engine:   e,
		req:      req,
		dims:     dims,
		exprs:    exprs,
		explicit: explicit,
	}

	table := &types.GroupedTable{Columns: aggregate.Schema(dims)}

	allCounties := hasAll(req.Counties)
	var combined *types.GroupedTable
	if allCounties {
		combined, err = run.buildBlock(ctx, nil, "All Counties")
	} else {
		combined, err = run.buildBlock(ctx, req.Counties, "Selected Counties")
	}
	if err != nil {
		return nil, err
	}
	table.Append(combined)
	totalPopulation := combined.TotalCount()

	// Per-county breakdown blocks follow the combined block in the
	// caller-specified county order. Grouping by County already yields
	// county rows, so breakdowns are skipped there.
	if !allCounties && req.IncludeBreakdown && !types.HasDimension(dims, types.DimCounty) {
		for _, county := range req.Counties {
			block, err := run.buildBlock(ctx, []string{county}, county)
			if err != nil {
				return nil, err
			}
			table.Append(block)
		}
	}

	keygen.Attach(table, keygen.ActiveFilters{
		Race:      req.Race,
		Ethnicity: req.Ethnicity,
		Sex:       req.Sex,
		Region:    req.Region,
	})
	warnings = append(warnings, run.warnings...)

	result := &types.QueryResult{
		ID:              e.requestID(req),
		Table:           table,
		Filters:         summarize(req),
		RecordCount:     len(table.Rows),
		TotalPopulation: totalPopulation,
		Warnings:        warnings,
	}

	if req.Pivot != nil {
		spec, pivotWarnings, err := translatePivot(*req.Pivot)
		if err != nil {
			return nil, err
		}
		result.Pivot = pivot.Build(table, spec)
		result.Pivot.Warnings = append(pivotWarnings, result.Pivot.Warnings...)
	}

	logging.Info("query complete",
		zap.String("id", result.ID),
		zap.Int("rows", result.RecordCount),
		zap.Int("total_population", result.TotalPopulation))
	return result, nil
}

// runState carries the per-query inputs shared by all blocks.
type runState struct {
	engine   *Engine
	req      types.QueryRequest
	dims     []types.Dimension
	exprs    []bracket.Expr
	explicit []string
	warnings []string
}

// buildBlock aggregates one (county selection, label) block across the
// requested years. Each year is one unit of work; cancellation between
// units skips not-yet-started years.
func (s *runState) buildBlock(ctx context.Context, counties []string, label string) (*types.GroupedTable, error) {
	codes := []int{}
	for _, name := range counties {
		id := types.CountyByName(name, s.engine.ref.Counties)
		if !id.Resolved() {
			s.warnings = append(s.warnings, fmt.Sprintf("unknown county %q ignored", name))
			continue
		}
		codes = append(codes, id.Code())
	}

	block := &types.GroupedTable{Columns: aggregate.Schema(s.dims)}
	for _, year := range s.req.Years {
		if strings.EqualFold(year, "All") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := s.engine.source.Records(year)
		if err != nil {
			return nil, err
		}

		records = filter.Apply(records, filter.Criteria{
			Counties:  codes,
			Race:      types.RaceCode(s.req.Race),
			Ethnicity: s.req.Ethnicity,
			Sex:       s.req.Sex,
			Region:    s.req.Region,
		}, s.engine.ref.Regions)

		if len(s.req.CustomRanges) > 0 {
			records = filter.ByCustomRanges(records, s.req.CustomRanges)
		} else if len(s.explicit) > 0 {
			records = filter.ByExpressions(records, s.explicit)
		}

		yearBlock := aggregate.Aggregate(records, s.dims, aggregate.Options{
			Year:         year,
			CountyLabel:  label,
			Counties:     s.engine.ref.Counties,
			Regions:      s.engine.ref.Regions,
			CustomRanges: s.req.CustomRanges,
			Exprs:        s.exprs,
		})
		block.Append(yearBlock)
	}
	return block, nil
}

// requestID derives a stable identifier from the request alone.
func (e *Engine) requestID(req types.QueryRequest) string {
	encoded, _ := json.Marshal(req)
	return string(e.ids.Generate(string(encoded)))
}

func hasAll(values []string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), "All") {
			return true
		}
	}
	return false
}

func summarize(req types.QueryRequest) types.FilterSummary {
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	ageGroup := orDefault(req.AgeGroup, "All")
	if len(req.CustomRanges) > 0 {
		ageGroup = "Custom Ranges"
	}
	return types.FilterSummary{
		Years:     req.Years,
		Counties:  req.Counties,
		Race:      orDefault(req.Race, "All"),
		Ethnicity: orDefault(req.Ethnicity, "All"),
		Sex:       orDefault(req.Sex, "All"),
		Region:    orDefault(req.Region, "None"),
		AgeGroup:  ageGroup,
		GroupBy:   req.GroupBy,
	}
}

// translatePivot maps the request's pivot parameters onto a pivot spec.
func translatePivot(req types.PivotRequest) (pivot.Spec, []string, error) {
	warnings := []string{}

	spec := pivot.Spec{
		Column:      pivot.NoColumn,
		Margins:     req.Margins,
		SortByTotal: req.SortByTotal,
		Stack:       req.Stack,
	}

	for _, name := range req.Rows {
		col, err := pivotColumn(name)
		if err != nil {
			return spec, nil, errors.Wrap(errors.TypeInput, "parsing pivot rows", err)
		}
		spec.Rows = append(spec.Rows, col)
	}
	if req.Column != "" {
		col, err := pivotColumn(req.Column)
		if err != nil {
			return spec, nil, errors.Wrap(errors.TypeInput, "parsing pivot column", err)
		}
		spec.Column = col
	}

	for _, v := range req.Values {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "count":
			spec.Values = append(spec.Values, pivot.FieldCount)
		case "percent":
			spec.Values = append(spec.Values, pivot.FieldPercent)
		default:
			return spec, nil, errors.Newf(errors.TypeInput, "unknown pivot value field %q", v)
		}
	}

	switch pivot.Reducer(strings.ToLower(req.Reducer)) {
	case "", pivot.ReduceSum, pivot.ReduceMean, pivot.ReduceMedian, pivot.ReduceMax, pivot.ReduceMin:
		spec.Reducer = pivot.Reducer(strings.ToLower(req.Reducer))
	default:
		warnings = append(warnings, fmt.Sprintf("unknown reducer %q, using sum", req.Reducer))
	}
	switch pivot.PercentMode(strings.ToLower(req.PercentMode)) {
	case "", pivot.PercentWeighted, pivot.PercentUnweighted:
		spec.PercentMode = pivot.PercentMode(strings.ToLower(req.PercentMode))
	default:
		warnings = append(warnings, fmt.Sprintf("unknown percent mode %q, using weighted", req.PercentMode))
	}

	return spec, warnings, nil
}

// pivotColumn resolves a dimension name to the table column the pivot
// axes use; County pivots on the name column.
func pivotColumn(name string) (types.Column, error) {
	dim, err := types.ParseDimension(name)
	if err != nil {
		return 0, err
	}
	if dim == types.DimCounty {
		return types.ColCountyName, nil
	}
	return types.DimensionColumn(dim), nil
}
