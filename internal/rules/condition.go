// Package rules implements the declarative condition language shared by
// regulation matching and questionnaire branching. Both use sites must go
// through Evaluate so their semantics never drift apart.
package rules

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Operator names one atomic test against a profile field.
type Operator string

const (
	OpEq       Operator = "eq"
	OpIn       Operator = "in"
	OpGt       Operator = "gt"
	OpExists   Operator = "exists"
	OpTrue     Operator = "true"
	OpIncludes Operator = "includes"
)

// Known reports whether op is part of the condition language. Unknown
// operators are not an error — Evaluate treats them as non-matching — but
// the catalog loader rejects them at admission time.
func (op Operator) Known() bool {
	switch op {
	case OpEq, OpIn, OpGt, OpExists, OpTrue, OpIncludes:
		return true
	}
	return false
}

// Condition is one declarative predicate: does profile[Field] satisfy
// Operator with respect to Value? Value is unused by exists and true.
type Condition struct {
	Field    string   `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    Operand  `json:"value,omitempty" yaml:"value,omitempty"`
}

type operandKind int

const (
	operandNone operandKind = iota
	operandScalar
	operandBool
	operandList
)

// Operand is the comparison value of a condition: a string-ish scalar, a
// boolean, a string list, or nothing. Numbers are carried as their string
// form; only the gt operator ever interprets them numerically.
type Operand struct {
	kind   operandKind
	scalar string
	b      bool
	list   []string
}

func ScalarOperand(s string) Operand { return Operand{kind: operandScalar, scalar: s} }

func BoolOperand(b bool) Operand { return Operand{kind: operandBool, b: b} }

func ListOperand(ss ...string) Operand {
	out := make([]string, len(ss))
	copy(out, ss)
	return Operand{kind: operandList, list: out}
}

func (o Operand) IsZero() bool { return o.kind == operandNone }

// Scalar returns the scalar form, ok=false for list/bool/none operands.
func (o Operand) Scalar() (string, bool) {
	return o.scalar, o.kind == operandScalar
}

func (o Operand) Bool() (bool, bool) {
	return o.b, o.kind == operandBool
}

// List returns the list form, ok=false otherwise.
func (o Operand) List() ([]string, bool) {
	if o.kind != operandList {
		return nil, false
	}
	return o.list, true
}

func (o Operand) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case operandNone:
		return []byte("null"), nil
	case operandBool:
		return json.Marshal(o.b)
	case operandList:
		return json.Marshal(o.list)
	default:
		return json.Marshal(o.scalar)
	}
}

func (o *Operand) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return o.fromAny(raw)
}

// UnmarshalYAML lets catalog files write condition values in their natural
// scalar or list form.
func (o *Operand) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return o.fromAny(raw)
}

func (o Operand) MarshalYAML() (any, error) {
	switch o.kind {
	case operandNone:
		return nil, nil
	case operandBool:
		return o.b, nil
	case operandList:
		return o.list, nil
	default:
		return o.scalar, nil
	}
}

func (o *Operand) fromAny(raw any) error {
	switch t := raw.(type) {
	case nil:
		*o = Operand{}
	case string:
		*o = ScalarOperand(t)
	case bool:
		*o = BoolOperand(t)
	case int:
		*o = ScalarOperand(strconv.Itoa(t))
	case float64:
		*o = ScalarOperand(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("condition value lists must contain strings, got %T", item)
			}
			items = append(items, s)
		}
		*o = ListOperand(items...)
	default:
		return fmt.Errorf("unsupported condition value type %T", raw)
	}
	return nil
}
