package rules

import (
	"strconv"

	"regscope/internal/profile"
)

// bucketOrdinals maps the categorical range labels the questionnaire uses to
// their lower bound, so gt can order answers like "6-10" against thresholds.
// Labels outside the table fall back to a plain numeric parse, defaulting to
// 0 when that fails too. Product has been asked whether the numeric fallback
// is intentional; until clarified the behavior stays as documented.
var bucketOrdinals = map[string]float64{
	"0":     0,
	"1-5":   1,
	"6-10":  6,
	"11-20": 11,
	"20+":   21,
}

func ordinal(s string) float64 {
	if v, ok := bucketOrdinals[s]; ok {
		return v
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Evaluate applies one condition to a profile. It is pure and total: unknown
// operators, absent fields, and type mismatches all evaluate to false (or to
// the operator's documented fallback), never to an error.
func Evaluate(c Condition, p profile.Profile) bool {
	v := p.Get(c.Field)

	switch c.Operator {
	case OpEq:
		return evalEq(v, c.Value)
	case OpIn:
		return evalIn(v, c.Value)
	case OpGt:
		return evalGt(v, c.Value)
	case OpExists:
		return evalExists(v)
	case OpTrue:
		b, ok := v.Bool()
		return ok && b
	case OpIncludes:
		return evalIncludes(v, c.Value)
	default:
		return false
	}
}

// All reports whether every condition holds. An empty list holds vacuously —
// the matcher relies on this for unconditional regulations.
func All(conds []Condition, p profile.Profile) bool {
	for _, c := range conds {
		if !Evaluate(c, p) {
			return false
		}
	}
	return true
}

// evalEq is strict equality across the value union: kinds must line up.
// An absent field only equals an absent operand, which catalog authors are
// discouraged from writing.
func evalEq(v profile.Value, op Operand) bool {
	if v.IsAbsent() {
		return op.IsZero()
	}
	if s, ok := v.Scalar(); ok {
		want, isScalar := op.Scalar()
		return isScalar && s == want
	}
	if b, ok := v.Bool(); ok {
		want, isBool := op.Bool()
		return isBool && b == want
	}
	// Lists never compare equal under eq; use includes or in instead.
	return false
}

// evalIn: list-valued fields match on non-empty intersection ("any of these
// selected"); scalar fields on plain membership.
func evalIn(v profile.Value, op Operand) bool {
	accepted, ok := op.List()
	if !ok {
		return false
	}
	if selections, isList := v.List(); isList {
		for _, sel := range selections {
			for _, want := range accepted {
				if sel == want {
					return true
				}
			}
		}
		return false
	}
	s, isScalar := v.Scalar()
	if !isScalar {
		return false
	}
	for _, want := range accepted {
		if s == want {
			return true
		}
	}
	return false
}

func evalGt(v profile.Value, op Operand) bool {
	threshold, ok := op.Scalar()
	if !ok {
		return false
	}
	s, isScalar := v.Scalar()
	if !isScalar {
		// Toggles, lists, and absent fields carry no ordinal; they rank 0.
		return 0 > ordinal(threshold)
	}
	return ordinal(s) > ordinal(threshold)
}

// evalExists: present and not the empty string. A false toggle and an empty
// multi-select both exist; only absence and "" do not.
func evalExists(v profile.Value) bool {
	if v.IsAbsent() {
		return false
	}
	if s, ok := v.Scalar(); ok {
		return s != ""
	}
	return true
}

// evalIncludes: single-value membership in a list-valued field. Distinct
// from in, which is set intersection.
func evalIncludes(v profile.Value, op Operand) bool {
	want, ok := op.Scalar()
	if !ok {
		return false
	}
	selections, isList := v.List()
	if !isList {
		return false
	}
	for _, sel := range selections {
		if sel == want {
			return true
		}
	}
	return false
}
