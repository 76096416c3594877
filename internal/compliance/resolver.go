// Package compliance infers the tri-state compliance status of a matched
// regulation from the boolean check answers in the profile, and aggregates
// statuses into the overall score.
package compliance

import (
	"math"

	"regscope/internal/profile"
	"regscope/internal/regulation/models"
)

// ResolveStatus reduces the regulation's compliance-check answers to a
// status. The reduction is order-independent and three-valued:
//
//   - no check fields configured, or none answered → needs-review
//   - any answered field false → missing
//   - all answered fields true → fulfilled
//   - answered but neither (non-boolean noise) → needs-review
//
// A single explicit "no" outweighs any number of "yes" answers.
func ResolveStatus(regulationID string, p profile.Profile, checks models.CheckFieldMap) models.Status {
	fields := checks[regulationID]
	if len(fields) == 0 {
		return models.StatusNeedsReview
	}

	present := 0
	trues := 0
	for _, field := range fields {
		v := p.Get(field)
		if v.IsAbsent() {
			continue
		}
		present++
		b, ok := v.Bool()
		if !ok {
			continue
		}
		if !b {
			return models.StatusMissing
		}
		trues++
	}

	if present == 0 {
		return models.StatusNeedsReview
	}
	if trues == present {
		return models.StatusFulfilled
	}
	return models.StatusNeedsReview
}

// Score returns the percentage of matched regulations with status fulfilled,
// rounded to the nearest whole point. An empty match set scores 0.
func Score(matched []models.MatchedRegulation) int {
	if len(matched) == 0 {
		return 0
	}
	fulfilled := 0
	for _, m := range matched {
		if m.Status == models.StatusFulfilled {
			fulfilled++
		}
	}
	return int(math.Round(float64(fulfilled) / float64(len(matched)) * 100))
}
