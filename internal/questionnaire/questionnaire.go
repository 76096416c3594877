// Package questionnaire models the declarative screen definitions the UI
// collaborator renders, and decides which fields are visible and which
// answers are missing. Visibility reuses the rules evaluator so that
// questionnaire branching and regulation matching can never disagree.
package questionnaire

import (
	"regscope/internal/profile"
	"regscope/internal/rules"
)

// FieldType names the input widget a field renders as.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "single-select"
	FieldMultiSelect FieldType = "multi-select"
	FieldToggle      FieldType = "toggle"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldDate, FieldSelect, FieldMultiSelect, FieldToggle:
		return true
	}
	return false
}

// Option is one selectable answer of a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field describes one questionnaire input. A field with ShowWhen is only
// rendered (and only validated) while its condition holds against the
// answers collected so far. ComplianceCheck marks dual-purpose fields whose
// answer doubles as a direct compliance signal for the status resolver.
type Field struct {
	ID              string           `json:"id" yaml:"id"`
	Label           string           `json:"label" yaml:"label"`
	Type            FieldType        `json:"type" yaml:"type"`
	Required        bool             `json:"required" yaml:"required"`
	Options         []Option         `json:"options,omitempty" yaml:"options,omitempty"`
	ShowWhen        *rules.Condition `json:"showWhen,omitempty" yaml:"showWhen,omitempty"`
	ComplianceCheck bool             `json:"complianceCheck,omitempty" yaml:"complianceCheck,omitempty"`
}

// Layer is one screen's worth of fields.
type Layer struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// ErrorKind classifies a missing required answer so the UI can phrase the
// message per widget type.
type ErrorKind string

const (
	ErrTextRequired        ErrorKind = "textRequired"
	ErrDateRequired        ErrorKind = "dateRequired"
	ErrSelectRequired      ErrorKind = "selectRequired"
	ErrMultiselectRequired ErrorKind = "multiselectRequired"
)

// Visible reports whether the field should currently be rendered. Fields
// without a ShowWhen condition are always visible.
func Visible(f Field, p profile.Profile) bool {
	if f.ShowWhen == nil {
		return true
	}
	return rules.Evaluate(*f.ShowWhen, p)
}

// VisibleFields filters the layer to its currently visible fields.
func VisibleFields(l Layer, p profile.Profile) []Field {
	out := make([]Field, 0, len(l.Fields))
	for _, f := range l.Fields {
		if Visible(f, p) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateLayer returns one error per visible required field with a
// missing or empty answer, keyed by field id. Invisible fields contribute
// nothing, whatever their required flag says. Toggles are never
// required-validated: a false toggle is a legitimate explicit answer, not an
// empty one — deliberate asymmetry, do not "fix" it.
func ValidateLayer(l Layer, p profile.Profile) map[string]ErrorKind {
	errs := make(map[string]ErrorKind)
	for _, f := range l.Fields {
		if !f.Required || f.Type == FieldToggle {
			continue
		}
		if !Visible(f, p) {
			continue
		}
		if p.Get(f.ID).IsEmpty() {
			errs[f.ID] = requiredKind(f.Type)
		}
	}
	return errs
}

func requiredKind(t FieldType) ErrorKind {
	switch t {
	case FieldDate:
		return ErrDateRequired
	case FieldSelect:
		return ErrSelectRequired
	case FieldMultiSelect:
		return ErrMultiselectRequired
	default:
		return ErrTextRequired
	}
}

// CheckFields returns the ids of all compliance-check fields across layers,
// used by the catalog lint to cross-reference the check map.
func CheckFields(layers []Layer) []string {
	var out []string
	for _, l := range layers {
		for _, f := range l.Fields {
			if f.ComplianceCheck {
				out = append(out, f.ID)
			}
		}
	}
	return out
}

// FieldIDs returns every declared field id across layers.
func FieldIDs(layers []Layer) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, l := range layers {
		for _, f := range l.Fields {
			ids[f.ID] = struct{}{}
		}
	}
	return ids
}
