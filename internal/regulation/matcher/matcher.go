// Package matcher decides which regulations apply to a business profile and
// orders the result for presentation. It is pure: matching the same profile
// against the same catalog twice yields identical output.
package matcher

import (
	"sort"

	"regscope/internal/compliance"
	"regscope/internal/explain"
	"regscope/internal/profile"
	"regscope/internal/regulation/models"
	"regscope/internal/rules"
)

// Applies reports whether a regulation's conditions hold for the profile.
// An empty appliesWhen list means the regulation is unconditional; otherwise
// every condition must hold (conjunction only — the catalog encodes OR as
// separate entries).
func Applies(reg models.Regulation, p profile.Profile) bool {
	return rules.All(reg.AppliesWhen, p)
}

// Match returns the applicable regulations ordered by risk level descending
// (high, medium, low), catalog order preserved within a band. Status and
// explanation are left at their zero values; MatchAndExplain fills them.
func Match(p profile.Profile, catalog []models.Regulation) []models.MatchedRegulation {
	matched := make([]models.MatchedRegulation, 0, len(catalog))
	for _, reg := range catalog {
		if Applies(reg, p) {
			matched = append(matched, models.MatchedRegulation{Regulation: reg})
		}
	}
	// Stable keeps catalog order within a risk band; the ordering is a
	// user-facing contract, most urgent items first.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].RiskLevel.Rank() < matched[j].RiskLevel.Rank()
	})
	return matched
}

// MatchAndExplain runs the full pure pipeline: applicability, compliance
// status, and rendered explanation per matched regulation.
func MatchAndExplain(p profile.Profile, catalog []models.Regulation, checks models.CheckFieldMap) []models.MatchedRegulation {
	matched := Match(p, catalog)
	for i := range matched {
		matched[i].Status = compliance.ResolveStatus(matched[i].ID, p, checks)
		matched[i].Explanation = explain.Render(matched[i].ExplanationTemplate, p)
	}
	return matched
}
