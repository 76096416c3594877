// Package profile defines the business profile: the accumulated questionnaire
// answers one scan evaluates against. The profile is schemaless on purpose —
// new questionnaire fields must never require engine changes.
package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the value union. Making the union explicit keeps the
// per-operator fallback behavior exhaustive instead of relying on runtime
// type sniffing.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindToggle
	KindChoice
	KindMulti
)

// Value is one questionnaire answer: free text, a boolean toggle, a
// single-select choice, a multi-select list, or absent. An absent Value is
// indistinguishable from a missing profile key.
type Value struct {
	kind   Kind
	scalar string
	toggle bool
	list   []string
}

func Absent() Value { return Value{} }

func Text(s string) Value { return Value{kind: KindText, scalar: s} }

func Toggle(b bool) Value { return Value{kind: KindToggle, toggle: b} }

func Choice(s string) Value { return Value{kind: KindChoice, scalar: s} }

func Multi(ss ...string) Value {
	out := make([]string, len(ss))
	copy(out, ss)
	return Value{kind: KindMulti, list: out}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Bool reports the toggle value; ok is false for non-toggle kinds.
func (v Value) Bool() (value, ok bool) {
	return v.toggle, v.kind == KindToggle
}

// Scalar reports the string form of a text or single-select answer.
func (v Value) Scalar() (string, bool) {
	if v.kind == KindText || v.kind == KindChoice {
		return v.scalar, true
	}
	return "", false
}

// List reports the selections of a multi-select answer.
func (v Value) List() ([]string, bool) {
	if v.kind != KindMulti {
		return nil, false
	}
	return v.list, true
}

// IsEmpty reports whether the value carries no usable answer: absent, an
// empty string, or an empty list. A false toggle is NOT empty — it is an
// explicit answer.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindText, KindChoice:
		return v.scalar == ""
	case KindMulti:
		return len(v.list) == 0
	default:
		return false
	}
}

// Display renders the value for human-readable output, joining multi-select
// lists with ", ".
func (v Value) Display() string {
	switch v.kind {
	case KindToggle:
		if v.toggle {
			return "true"
		}
		return "false"
	case KindMulti:
		return strings.Join(v.list, ", ")
	default:
		return v.scalar
	}
}

// MarshalJSON emits the natural wire form: string, bool, list, or null.
// Choice collapses to a plain string; the distinction only matters to the
// questionnaire layer, not to persistence or replay.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAbsent:
		return []byte("null"), nil
	case KindToggle:
		return json.Marshal(v.toggle)
	case KindMulti:
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.scalar)
	}
}

// UnmarshalJSON accepts strings, booleans, numbers (kept as their string
// form), string lists, and null. Anything else is rejected at the boundary
// so the engine never sees an unrepresentable value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Absent()
	case string:
		*v = Text(t)
	case bool:
		*v = Toggle(t)
	case float64:
		// Numbers are kept as their string form; the gt operator parses them
		// back when it needs ordering.
		*v = Text(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("profile list values must be strings, got %T", item)
			}
			items = append(items, s)
		}
		*v = Multi(items...)
	default:
		return fmt.Errorf("unsupported profile value type %T", raw)
	}
	return nil
}

// Profile maps field identifiers to answers. A nil Profile behaves like an
// empty one.
type Profile map[string]Value

// Get returns the answer for field, or an absent Value. Missing keys and
// explicit nulls are identical by contract.
func (p Profile) Get(field string) Value {
	if p == nil {
		return Absent()
	}
	return p[field]
}

// Set returns nothing and mutates in place; callers snapshot via Clone before
// handing a profile to the engine if they keep collecting answers.
func (p Profile) Set(field string, v Value) {
	p[field] = v
}

// Clone produces an independent copy, used to snapshot the in-progress
// questionnaire state at scan time.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Fields returns the sorted field identifiers, for deterministic iteration.
func (p Profile) Fields() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fingerprint returns a stable content hash of the profile, used as a cache
// key. json.Marshal sorts map keys, so equal profiles hash equal.
func (p Profile) Fingerprint() string {
	data, err := json.Marshal(p)
	if err != nil {
		// Value marshaling cannot fail; guard anyway so callers never panic.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
