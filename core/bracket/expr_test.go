package bracket

import (
	"testing"
)

// TestParseCanonical tests the canonical bracket spellings
func TestParseCanonical(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind ExprKind
		code int
		min  int
		max  int
	}{
		{name: "first base bracket", text: "0-4", kind: SingleCode, code: 1},
		{name: "middle base bracket", text: "40-44", kind: SingleCode, code: 9},
		{name: "last closed bracket", text: "80-84", kind: SingleCode, code: 17},
		{name: "open-ended base bracket", text: "80+", kind: SingleCode, code: 18},
		{name: "working-age merge", text: "20-64", kind: ClosedRange, min: 5, max: 13},
		{name: "senior merge", text: "65+", kind: ClosedRange, min: 14, max: 18},
		{name: "youth merge", text: "0-19", kind: ClosedRange, min: 1, max: 4},
		{name: "adult merge", text: "20+", kind: ClosedRange, min: 5, max: 18},
		{name: "whitespace trimmed", text: "  5-9  ", kind: SingleCode, code: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := Parse(tt.text)
			if expr.Kind != tt.kind {
				t.Fatalf("expected kind %v, got %v", tt.kind, expr.Kind)
			}
			switch tt.kind {
			case SingleCode:
				if expr.Code != tt.code {
					t.Errorf("expected code %d, got %d", tt.code, expr.Code)
				}
			case ClosedRange:
				if expr.Min != tt.min || expr.Max != tt.max {
					t.Errorf("expected range [%d,%d], got [%d,%d]", tt.min, tt.max, expr.Min, expr.Max)
				}
			}
		})
	}
}

// TestParseFallback tests the structural fallback where numbers are age codes
func TestParseFallback(t *testing.T) {
	expr := Parse("3-7")
	if expr.Kind != ClosedRange {
		t.Fatalf("expected ClosedRange, got %v", expr.Kind)
	}
	if expr.Min != 3 || expr.Max != 7 {
		t.Errorf("expected code range [3,7], got [%d,%d]", expr.Min, expr.Max)
	}

	open := Parse("12+")
	if open.Kind != OpenRange {
		t.Fatalf("expected OpenRange, got %v", open.Kind)
	}
	if open.Min != 12 {
		t.Errorf("expected min 12, got %d", open.Min)
	}
}

// TestParseUnrecognized tests that unparseable text fails soft
func TestParseUnrecognized(t *testing.T) {
	for _, text := range []string{"adults", "a-b", "x+", "", "10-"} {
		expr := Parse(text)
		if expr.Kind != Unrecognized {
			t.Errorf("Parse(%q): expected Unrecognized, got %v", text, expr.Kind)
		}
		for age := 1; age <= 18; age++ {
			if expr.Matches(age) {
				t.Errorf("Parse(%q): unrecognized expression matched age %d", text, age)
			}
		}
	}
}

// TestBaseBracketsPartitionCodes proves every age code 1..18 lands in
// exactly one base bracket
func TestBaseBracketsPartitionCodes(t *testing.T) {
	base := []string{
		"0-4", "5-9", "10-14", "15-19", "20-24", "25-29", "30-34",
		"35-39", "40-44", "45-49", "50-54", "55-59", "60-64", "65-69",
		"70-74", "75-79", "80-84", "80+",
	}
	exprs := ParseAll(base)

	for age := 1; age <= 18; age++ {
		matched := 0
		for _, expr := range exprs {
			if expr.Matches(age) {
				matched++
			}
		}
		if matched != 1 {
			t.Errorf("age code %d matched %d base brackets, expected exactly 1", age, matched)
		}
	}
}

// TestMergedBracketsCoverAllCodes proves each merged pair covers 1..18
func TestMergedBracketsCoverAllCodes(t *testing.T) {
	pairs := [][]string{
		{"0-19", "20-64", "65+"},
		{"0-19", "20+"},
	}
	for _, labels := range pairs {
		exprs := ParseAll(labels)
		for age := 1; age <= 18; age++ {
			matched := false
			for _, expr := range exprs {
				if expr.Matches(age) {
					matched = true
				}
			}
			if !matched {
				t.Errorf("brackets %v: age code %d matched nothing", labels, age)
			}
		}
	}
}

// TestCombineCodes tests merged label synthesis from code sets
func TestCombineCodes(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  string
	}{
		{name: "single code", codes: []int{1}, want: "0-4"},
		{name: "contiguous closed", codes: []int{1, 2, 3, 4, 5}, want: "0-24"},
		{name: "youth half", codes: []int{1, 2, 3, 4}, want: "0-19"},
		{name: "second half", codes: []int{6, 7, 8, 9, 10}, want: "25-49"},
		{name: "with open-ended code", codes: []int{14, 15, 16, 17, 18}, want: "65+"},
		{name: "order does not matter", codes: []int{5, 1, 3}, want: "0-24"},
		{name: "duplicates collapse", codes: []int{2, 2, 2}, want: "5-9"},
		{name: "unknown codes fall back to raw list", codes: []int{40, 50}, want: "40-50"},
		{name: "empty", codes: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CombineCodes(tt.codes)
			if got != tt.want {
				t.Errorf("CombineCodes(%v) = %q, want %q", tt.codes, got, tt.want)
			}
		})
	}
}
