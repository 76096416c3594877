// Package catalog loads the regulation knowledge base and questionnaire
// definition from YAML and validates them at admission time. The runtime
// engine never validates — malformed reference data is rejected here, once,
// before the server starts taking scans.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"regscope/internal/explain"
	"regscope/internal/questionnaire"
	"regscope/internal/regulation/models"
)

//go:embed data/default.yaml
var defaultCatalog []byte

// Catalog bundles the three static datasets the engine consumes. It is
// loaded once at process start and treated as read-only for the process
// lifetime; concurrent scan requests share it without locking because
// nothing writes.
type Catalog struct {
	Version       string                `json:"version" yaml:"version"`
	Regulations   []models.Regulation   `json:"regulations" yaml:"regulations"`
	Checks        models.CheckFieldMap  `json:"complianceChecks" yaml:"complianceChecks"`
	Questionnaire []questionnaire.Layer `json:"questionnaire" yaml:"questionnaire"`
}

// Load reads and parses a catalog file. An empty path loads the embedded
// default knowledge base.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates raw YAML structurally against the catalog schema, decodes
// it, and runs the semantic admission checks.
func Parse(data []byte) (*Catalog, error) {
	// Schema validation runs on the generic decoding so error paths name
	// the offending document location, not a Go field.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func validateSchema(raw any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("validate catalog schema: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("catalog schema violations: %s", strings.Join(msgs, "; "))
}

// validate enforces the semantic invariants the JSON schema cannot express:
// id uniqueness, operator membership, and check-map referential integrity
// against the regulation list.
func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Regulations))
	for _, reg := range c.Regulations {
		if _, dup := seen[reg.ID]; dup {
			return fmt.Errorf("duplicate regulation id %q", reg.ID)
		}
		seen[reg.ID] = struct{}{}

		if !reg.RiskLevel.Valid() {
			return fmt.Errorf("regulation %q: unknown risk level %q", reg.ID, reg.RiskLevel)
		}
		if !reg.Jurisdiction.Valid() {
			return fmt.Errorf("regulation %q: unknown jurisdiction %q", reg.ID, reg.Jurisdiction)
		}
		if !reg.Category.Valid() {
			return fmt.Errorf("regulation %q: unknown category %q", reg.ID, reg.Category)
		}
		for _, cond := range reg.AppliesWhen {
			if !cond.Operator.Known() {
				return fmt.Errorf("regulation %q: unknown operator %q", reg.ID, cond.Operator)
			}
			if cond.Field == "" {
				return fmt.Errorf("regulation %q: condition with empty field", reg.ID)
			}
		}
	}

	for regID := range c.Checks {
		if _, ok := seen[regID]; !ok {
			return fmt.Errorf("compliance check map references unknown regulation %q", regID)
		}
	}

	layerSeen := make(map[string]struct{}, len(c.Questionnaire))
	fieldSeen := make(map[string]struct{})
	for _, layer := range c.Questionnaire {
		if _, dup := layerSeen[layer.ID]; dup {
			return fmt.Errorf("duplicate questionnaire layer id %q", layer.ID)
		}
		layerSeen[layer.ID] = struct{}{}
		for _, f := range layer.Fields {
			if _, dup := fieldSeen[f.ID]; dup {
				return fmt.Errorf("duplicate questionnaire field id %q", f.ID)
			}
			fieldSeen[f.ID] = struct{}{}
			if !f.Type.Valid() {
				return fmt.Errorf("field %q: unknown type %q", f.ID, f.Type)
			}
			if f.ShowWhen != nil && !f.ShowWhen.Operator.Known() {
				return fmt.Errorf("field %q: unknown showWhen operator %q", f.ID, f.ShowWhen.Operator)
			}
		}
	}

	return nil
}

// Lint cross-references condition fields, template placeholders, and
// compliance-check fields against the questionnaire's declared field ids.
// Findings are warnings, not errors: persisted historical profiles may
// carry retired fields, and the engine must keep matching them (absent
// fields degrade per operator, they never fail).
func (c *Catalog) Lint() []string {
	declared := questionnaire.FieldIDs(c.Questionnaire)
	var warnings []string

	for _, reg := range c.Regulations {
		for _, cond := range reg.AppliesWhen {
			if _, ok := declared[cond.Field]; !ok {
				warnings = append(warnings, fmt.Sprintf(
					"regulation %q condition references undeclared field %q", reg.ID, cond.Field))
			}
		}
		for _, field := range explain.Fields(reg.ExplanationTemplate) {
			if _, ok := declared[field]; !ok {
				warnings = append(warnings, fmt.Sprintf(
					"regulation %q template references undeclared field %q", reg.ID, field))
			}
		}
	}

	for regID, fields := range c.Checks {
		for _, field := range fields {
			if _, ok := declared[field]; !ok {
				warnings = append(warnings, fmt.Sprintf(
					"compliance check for %q references undeclared field %q", regID, field))
			}
		}
	}

	return warnings
}

// Regulation looks up a catalog entry by id.
func (c *Catalog) Regulation(id string) (models.Regulation, bool) {
	for _, reg := range c.Regulations {
		if reg.ID == id {
			return reg, true
		}
	}
	return models.Regulation{}, false
}

// Layer looks up a questionnaire layer by id.
func (c *Catalog) Layer(id string) (questionnaire.Layer, bool) {
	for _, l := range c.Questionnaire {
		if l.ID == id {
			return l, true
		}
	}
	return questionnaire.Layer{}, false
}
