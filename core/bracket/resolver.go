package bracket

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"census-report/core/types"
	"census-report/internal/logging"
)

const (
	// AllAges is the bucket when age is not an active dimension
	AllAges = "All Ages"

	// OtherAges is the catch-all for rows no range or expression matched
	OtherAges = "Other Ages"
)

// codeLabels are the canonical labels of the 18 standard age codes.
var codeLabels = map[int]string{
	1: "0-4", 2: "5-9", 3: "10-14", 4: "15-19", 5: "20-24", 6: "25-29",
	7: "30-34", 8: "35-39", 9: "40-44", 10: "45-49", 11: "50-54",
	12: "55-59", 13: "60-64", 14: "65-69", 15: "70-74", 16: "75-79",
	17: "80-84", 18: "80+",
}

// openEnded marks the sentinel upper bound for "N+" labels.
const openEnded = 999

// CombineCodes merges the canonical labels of a code set into one label:
// lowest lower bound, highest upper bound, open-ended if any covered label
// is open-ended. Codes with no canonical label fall back to a
// hyphen-joined raw code list.
func CombineCodes(codes []int) string {
	uniq := make(map[int]bool, len(codes))
	ordered := make([]int, 0, len(codes))
	for _, c := range codes {
		if !uniq[c] {
			uniq[c] = true
			ordered = append(ordered, c)
		}
	}
	sort.Ints(ordered)
	if len(ordered) == 0 {
		return ""
	}

	lows, highs := []int{}, []int{}
	for _, c := range ordered {
		label := codeLabels[c]
		if before, after, found := strings.Cut(label, "-"); found {
			lo, errLo := strconv.Atoi(before)
			hi, errHi := strconv.Atoi(after)
			if errLo == nil && errHi == nil {
				lows = append(lows, lo)
				highs = append(highs, hi)
			}
		} else if strings.HasSuffix(label, "+") {
			if lo, err := strconv.Atoi(strings.TrimSuffix(label, "+")); err == nil {
				lows = append(lows, lo)
				highs = append(highs, openEnded)
			}
		}
	}

	if len(lows) == 0 {
		parts := make([]string, len(ordered))
		for i, c := range ordered {
			parts[i] = strconv.Itoa(c)
		}
		return strings.Join(parts, "-")
	}

	lo, hi := lows[0], highs[0]
	for i := 1; i < len(lows); i++ {
		if lows[i] < lo {
			lo = lows[i]
		}
		if highs[i] > hi {
			hi = highs[i]
		}
	}
	if hi >= openEnded {
		return strconv.Itoa(lo) + "+"
	}
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}

// Selection describes how age buckets are assigned for one query.
type Selection struct {
	// IncludeAge is false when age is not a grouping dimension; every row
	// then gets the AllAges bucket
	IncludeAge bool

	// Custom ranges override Exprs entirely when non-empty
	Custom []types.CustomRange

	// Exprs are the compiled expressions of a named bracket definition
	Exprs []Expr
}

// Resolve assigns exactly one bucket to every record. The returned slice
// is aligned with records; no row is ever dropped.
func Resolve(records []types.Record, sel Selection) []string {
	buckets := make([]string, len(records))

	if !sel.IncludeAge {
		for i := range buckets {
			buckets[i] = AllAges
		}
		return buckets
	}

	if len(sel.Custom) > 0 {
		return resolveCustom(records, sel.Custom)
	}

	if len(sel.Exprs) > 0 {
		return resolveNamed(records, sel.Exprs)
	}

	for i := range buckets {
		buckets[i] = AllAges
	}
	return buckets
}

// resolveCustom applies ranges in the order supplied. Where ranges
// overlap, a later range overwrites the earlier assignment for the shared
// codes; this matches the observed behavior and is deliberate.
func resolveCustom(records []types.Record, ranges []types.CustomRange) []string {
	buckets := make([]string, len(records))
	covered := make([]bool, len(records))

	for _, r := range ranges {
		clamped := r.Clamp()
		if clamped.Min > clamped.Max {
			logging.Warn("skipping invalid custom age range",
				zap.Int("min", r.Min), zap.Int("max", r.Max))
			continue
		}

		codes := make([]int, 0, clamped.Max-clamped.Min+1)
		for c := clamped.Min; c <= clamped.Max; c++ {
			codes = append(codes, c)
		}
		label := CombineCodes(codes)

		for i, rec := range records {
			if rec.Age >= clamped.Min && rec.Age <= clamped.Max {
				buckets[i] = label
				covered[i] = true
			}
		}
	}

	for i := range buckets {
		if !covered[i] {
			buckets[i] = OtherAges
		}
	}
	return buckets
}

// resolveNamed assigns each expression's literal text as the label, in
// definition order. Unrecognized expressions select zero rows.
func resolveNamed(records []types.Record, exprs []Expr) []string {
	buckets := make([]string, len(records))

	for _, expr := range exprs {
		if expr.Kind == Unrecognized {
			logging.Warn("unparseable bracket expression selects no rows",
				zap.String("expr", expr.Text))
			continue
		}
		for i, rec := range records {
			if expr.Matches(rec.Age) {
				buckets[i] = expr.Text
			}
		}
	}

	for i := range buckets {
		if buckets[i] == "" {
			buckets[i] = OtherAges
		}
	}
	return buckets
}
