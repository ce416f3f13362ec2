// Package bracket resolves age codes 1..18 into human-readable buckets.
//
// Input rows carry integer age codes with fixed 5-year meanings (1 -> 0-4,
// 2 -> 5-9, ... 17 -> 80-84, 18 -> 80+). A bracket expression selects one
// or more codes; a bracket definition is an ordered list of expressions.
package bracket

import (
	"strconv"
	"strings"
)

// ExprKind tags the parsed form of a bracket expression.
type ExprKind int

const (
	// SingleCode matches exactly one age code
	SingleCode ExprKind = iota

	// ClosedRange matches codes in [Min, Max]
	ClosedRange

	// OpenRange matches codes >= Min
	OpenRange

	// Unrecognized matches nothing; unparseable expressions fail soft
	Unrecognized
)

// Expr is one bracket expression, parsed once per definition.
type Expr struct {
	// Kind is the parsed form
	Kind ExprKind

	// Text is the original expression, used as the bucket label
	Text string

	// Code is set for SingleCode
	Code int

	// Min and Max are set for ClosedRange; Min for OpenRange
	Min, Max int
}

// Matches reports whether the expression selects the age code.
func (e Expr) Matches(age int) bool {
	switch e.Kind {
	case SingleCode:
		return age == e.Code
	case ClosedRange:
		return age >= e.Min && age <= e.Max
	case OpenRange:
		return age >= e.Min
	}
	return false
}

// canonical resolves the common bracket spellings directly: the 18 base
// brackets plus the merged forms that ship with the reference data. Values
// are either a single code or an inclusive code range.
type canonicalEntry struct {
	code     int
	min, max int
	isRange  bool
}

var canonicalExprs = map[string]canonicalEntry{
	"0-4":   {code: 1},
	"5-9":   {code: 2},
	"10-14": {code: 3},
	"15-19": {code: 4},
	"20-24": {code: 5},
	"25-29": {code: 6},
	"30-34": {code: 7},
	"35-39": {code: 8},
	"40-44": {code: 9},
	"45-49": {code: 10},
	"50-54": {code: 11},
	"55-59": {code: 12},
	"60-64": {code: 13},
	"65-69": {code: 14},
	"70-74": {code: 15},
	"75-79": {code: 16},
	"80-84": {code: 17},
	"80+":   {code: 18},

	"20-64": {min: 5, max: 13, isRange: true},
	"65+":   {min: 14, max: 18, isRange: true},
	"0-19":  {min: 1, max: 4, isRange: true},
	"20+":   {min: 5, max: 18, isRange: true},
}

// Parse resolves a bracket expression. Canonical spellings map directly to
// codes; anything else falls back to structural "A-B" / "A+" parsing, with
// the numbers interpreted as age codes. Unparseable text yields an
// Unrecognized expression that selects zero rows.
func Parse(text string) Expr {
	trimmed := strings.TrimSpace(text)

	if entry, ok := canonicalExprs[trimmed]; ok {
		if entry.isRange {
			return Expr{Kind: ClosedRange, Text: trimmed, Min: entry.min, Max: entry.max}
		}
		return Expr{Kind: SingleCode, Text: trimmed, Code: entry.code}
	}

	if strings.HasSuffix(trimmed, "+") {
		if start, err := strconv.Atoi(trimmed[:len(trimmed)-1]); err == nil {
			return Expr{Kind: OpenRange, Text: trimmed, Min: start}
		}
		return Expr{Kind: Unrecognized, Text: trimmed}
	}

	if before, after, found := strings.Cut(trimmed, "-"); found {
		mn, errLo := strconv.Atoi(before)
		mx, errHi := strconv.Atoi(after)
		if errLo == nil && errHi == nil {
			return Expr{Kind: ClosedRange, Text: trimmed, Min: mn, Max: mx}
		}
	}

	return Expr{Kind: Unrecognized, Text: trimmed}
}

// ParseAll parses every expression of a definition in order.
func ParseAll(texts []string) []Expr {
	exprs := make([]Expr, len(texts))
	for i, text := range texts {
		exprs[i] = Parse(text)
	}
	return exprs
}
