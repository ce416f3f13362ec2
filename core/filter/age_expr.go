package filter

import (
	"regexp"
	"strconv"
	"strings"
)

// agePredicate tests an age code against one explicit expression.
type agePredicate func(age int) bool

var (
	dashPattern = regexp.MustCompile(`^(\d+)-(\d+)$`)
	eqPattern   = regexp.MustCompile(`^AGE=(\d+)$`)
	gePattern   = regexp.MustCompile(`^AGE>=(\d+)$`)
	lePattern   = regexp.MustCompile(`^AGE<=(\d+)$`)
)

func matchNothing(int) bool { return false }

// parseAgeExpression handles the explicit bracket forms used for
// pre-aggregation filtering: "A-B", "Age=N", "Age>=A AND Age<=B", and the
// lone ">="/"<=" variants. Anything else excludes all rows.
func parseAgeExpression(expr string) agePredicate {
	compact := strings.ToUpper(strings.ReplaceAll(expr, " ", ""))

	if m := dashPattern.FindStringSubmatch(compact); m != nil {
		mn, _ := strconv.Atoi(m[1])
		mx, _ := strconv.Atoi(m[2])
		return func(age int) bool { return age >= mn && age <= mx }
	}

	if m := eqPattern.FindStringSubmatch(compact); m != nil {
		val, _ := strconv.Atoi(m[1])
		return func(age int) bool { return age == val }
	}

	if strings.Contains(compact, "AND") {
		preds := []agePredicate{}
		for _, part := range strings.Split(compact, "AND") {
			if m := gePattern.FindStringSubmatch(part); m != nil {
				val, _ := strconv.Atoi(m[1])
				preds = append(preds, func(age int) bool { return age >= val })
			} else if m := lePattern.FindStringSubmatch(part); m != nil {
				val, _ := strconv.Atoi(m[1])
				preds = append(preds, func(age int) bool { return age <= val })
			}
		}
		return func(age int) bool {
			for _, p := range preds {
				if !p(age) {
					return false
				}
			}
			return true
		}
	}

	if m := gePattern.FindStringSubmatch(compact); m != nil {
		val, _ := strconv.Atoi(m[1])
		return func(age int) bool { return age >= val }
	}

	if m := lePattern.FindStringSubmatch(compact); m != nil {
		val, _ := strconv.Atoi(m[1])
		return func(age int) bool { return age <= val }
	}

	return matchNothing
}
