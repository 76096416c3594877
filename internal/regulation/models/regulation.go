// Package models defines the regulation knowledge-base records. Regulations
// are immutable reference data: loaded once at startup, never mutated at
// runtime. Edits happen in the catalog file, not in code.
package models

import "regscope/internal/rules"

// RiskLevel orders matched regulations for the user: most urgent first.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Rank returns the sort rank, lower is more urgent. Unknown levels sink to
// the bottom rather than failing.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 0
	case RiskMedium:
		return 1
	case RiskLow:
		return 2
	default:
		return 3
	}
}

func (r RiskLevel) Valid() bool {
	return r == RiskHigh || r == RiskMedium || r == RiskLow
}

// Jurisdiction names the level of law a regulation originates from.
type Jurisdiction string

const (
	JurisdictionEU       Jurisdiction = "eu"
	JurisdictionFederal  Jurisdiction = "federal"
	JurisdictionState    Jurisdiction = "state"
	JurisdictionIndustry Jurisdiction = "industry"
)

func (j Jurisdiction) Valid() bool {
	switch j {
	case JurisdictionEU, JurisdictionFederal, JurisdictionState, JurisdictionIndustry:
		return true
	}
	return false
}

// Category is the closed set of compliance domains the catalog covers.
type Category string

const (
	CategoryDatenschutz       Category = "datenschutz"
	CategoryArbeitsschutz     Category = "arbeitsschutz"
	CategorySteuern           Category = "steuern"
	CategoryGewerbe           Category = "gewerbe"
	CategoryUmwelt            Category = "umwelt"
	CategoryProduktsicherheit Category = "produktsicherheit"
	CategoryOnline            Category = "online"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryDatenschutz,
	CategoryArbeitsschutz,
	CategorySteuern,
	CategoryGewerbe,
	CategoryUmwelt,
	CategoryProduktsicherheit,
	CategoryOnline,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the tri-state compliance verdict for one matched regulation.
type Status string

const (
	StatusFulfilled   Status = "fulfilled"
	StatusNeedsReview Status = "needs-review"
	StatusMissing     Status = "missing"
)

// Regulation is one knowledge-base entry.
//
// Invariants:
//   - ID is unique within a catalog
//   - AppliesWhen conditions are AND-combined; an empty list means the
//     regulation applies unconditionally
//   - Disjunction is encoded as separate entries or widened `in` value
//     lists, never as a nested expression tree
//   - The compliance-check field list lives in the catalog's separate
//     check map keyed by ID, so database edits never touch the resolver
type Regulation struct {
	ID                  string            `json:"id" yaml:"id"`
	Name                string            `json:"name" yaml:"name"`
	OfficialReference   string            `json:"officialReference" yaml:"officialReference"`
	Jurisdiction        Jurisdiction      `json:"jurisdiction" yaml:"jurisdiction"`
	Category            Category          `json:"category" yaml:"category"`
	RiskLevel           RiskLevel         `json:"riskLevel" yaml:"riskLevel"`
	Summary             string            `json:"summary" yaml:"summary"`
	KeyRequirements     []string          `json:"keyRequirements" yaml:"keyRequirements"`
	PotentialPenalty    string            `json:"potentialPenalty" yaml:"potentialPenalty"`
	SourceURL           string            `json:"sourceUrl" yaml:"sourceUrl"`
	AppliesWhen         []rules.Condition `json:"appliesWhen" yaml:"appliesWhen"`
	ExplanationTemplate string            `json:"explanationTemplate" yaml:"explanationTemplate"`
}

// MatchedRegulation is a Regulation augmented with the computed compliance
// status and rendered explanation. It is derived output: the profile plus
// the regulation id list is canonical, and re-deriving a matched set from
// the same inputs must reproduce it byte for byte.
type MatchedRegulation struct {
	Regulation  `yaml:",inline"`
	Status      Status `json:"status" yaml:"status"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// CheckFieldMap associates a regulation id with the profile fields whose
// boolean answers gate its fulfillment state.
type CheckFieldMap map[string][]string
