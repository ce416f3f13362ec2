// Package cmd - report command
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"census-report/core/engine"
	"census-report/core/loader"
	"census-report/core/output"
	"census-report/core/refdata"
	"census-report/core/types"
	"census-report/internal/config"
)

var (
	reportYears        []string
	reportCounties     []string
	reportGroupBy      []string
	reportRace         string
	reportEthnicity    string
	reportSex          string
	reportRegion       string
	reportAgeGroup     string
	reportCustomRanges []string
	reportBreakdown    bool
	reportFormat       string
	reportOutput       string
	reportDataFolder   string

	pivotRows    []string
	pivotColumn  string
	pivotValues  []string
	pivotReducer string
	pivotPercent string
	pivotMargins bool
	pivotSort    bool
	pivotStack   bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a reporting query and print or export the result",
	Long: `Aggregate the configured population extracts by the requested
dimensions and render the summary table.

Custom age ranges are given as min-max pairs of age codes, e.g.
--custom-range 1-5 --custom-range 6-10. When present they override the
named age group.

Examples:
  census-report report --years 2020 --group-by Race
  census-report report --years 2020 --group-by Age --age-group 6-Bracket
  census-report report --years 2020 --group-by Age,Race --pivot-rows Age --pivot-column Race`,
	RunE: runReport,
}

func init() {
	flags := reportCmd.Flags()
	flags.StringSliceVar(&reportYears, "years", nil, "years to include (required)")
	flags.StringSliceVar(&reportCounties, "counties", []string{"All"}, "county names, or All")
	flags.StringSliceVar(&reportGroupBy, "group-by", []string{"All"}, "grouping dimensions, or All for totals")
	flags.StringVar(&reportRace, "race", "All", "race filter (display name)")
	flags.StringVar(&reportEthnicity, "ethnicity", "All", "ethnicity filter")
	flags.StringVar(&reportSex, "sex", "All", "sex filter")
	flags.StringVar(&reportRegion, "region", "None", "region filter")
	flags.StringVar(&reportAgeGroup, "age-group", "All", "named age group (e.g. 18-Bracket, 6-Bracket, 2-Bracket)")
	flags.StringSliceVar(&reportCustomRanges, "custom-range", nil, "custom age code range min-max, repeatable")
	flags.BoolVar(&reportBreakdown, "breakdown", false, "append per-county breakdown blocks")
	flags.StringVarP(&reportFormat, "format", "f", "", "output format (table, csv, json)")
	flags.StringVarP(&reportOutput, "output", "o", "", "output file (default stdout)")
	flags.StringVar(&reportDataFolder, "data", "", "data folder override")

	flags.StringSliceVar(&pivotRows, "pivot-rows", nil, "pivot row dimensions")
	flags.StringVar(&pivotColumn, "pivot-column", "", "pivot column dimension")
	flags.StringSliceVar(&pivotValues, "pivot-values", nil, "pivot value fields (Count, Percent)")
	flags.StringVar(&pivotReducer, "pivot-reducer", "", "count reducer (sum, mean, median, max, min)")
	flags.StringVar(&pivotPercent, "pivot-percent", "", "percent mode (weighted, unweighted)")
	flags.BoolVar(&pivotMargins, "pivot-margins", false, "append Total row and column")
	flags.BoolVar(&pivotSort, "pivot-sort", false, "sort pivot rows by grand total")
	flags.BoolVar(&pivotStack, "pivot-stack", false, "stack one block per row dimension")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	folder := cfg.Data.Folder
	if reportDataFolder != "" {
		folder = reportDataFolder
	}

	ref, err := refdata.Load(cfg.Data.ReferenceFile)
	if err != nil {
		return err
	}

	req := types.QueryRequest{
		Years:            reportYears,
		Counties:         reportCounties,
		Race:             reportRace,
		Ethnicity:        reportEthnicity,
		Sex:              reportSex,
		Region:           reportRegion,
		AgeGroup:         reportAgeGroup,
		GroupBy:          reportGroupBy,
		IncludeBreakdown: reportBreakdown,
	}

	req.CustomRanges, err = parseRanges(reportCustomRanges)
	if err != nil {
		return err
	}

	if len(pivotRows) > 0 || pivotColumn != "" {
		req.Pivot = &types.PivotRequest{
			Rows:        pivotRows,
			Column:      pivotColumn,
			Values:      pivotValues,
			Reducer:     pivotReducer,
			PercentMode: pivotPercent,
			Margins:     pivotMargins,
			SortByTotal: pivotSort,
			Stack:       pivotStack,
		}
	}

	eng := engine.New(ref, loader.NewCSVSource(folder))
	result, err := eng.Run(context.Background(), req)
	if err != nil {
		return err
	}

	format := reportFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.ForFormat(format)
	if err != nil {
		return err
	}

	w := os.Stdout
	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := formatter.Render(w, result); err != nil {
		return err
	}
	if reportOutput != "" {
		fmt.Printf("Wrote %d rows to %s\n", result.RecordCount, reportOutput)
	}
	return nil
}

// parseRanges parses "min-max" pairs of age codes.
func parseRanges(specs []string) ([]types.CustomRange, error) {
	ranges := make([]types.CustomRange, 0, len(specs))
	for _, spec := range specs {
		before, after, found := strings.Cut(spec, "-")
		if !found {
			return nil, fmt.Errorf("invalid custom range %q, expected min-max", spec)
		}
		mn, errLo := strconv.Atoi(strings.TrimSpace(before))
		mx, errHi := strconv.Atoi(strings.TrimSpace(after))
		if errLo != nil || errHi != nil {
			return nil, fmt.Errorf("invalid custom range %q, expected min-max", spec)
		}
		ranges = append(ranges, types.CustomRange{Min: mn, Max: mx})
	}
	return ranges, nil
}
