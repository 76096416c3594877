// Package explain renders the deterministic "why this applies" text for a
// matched regulation. It is the always-present baseline; any generative
// enrichment layers on top of it and never replaces it.
package explain

import (
	"regexp"

	"regscope/internal/profile"
)

// Placeholder is rendered when a template references a field the profile
// does not carry.
const Placeholder = "—"

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Render substitutes {fieldName} tokens in template with profile values.
// Multi-select answers are joined with ", ". Absent fields render the
// em-dash placeholder. Malformed templates pass through untouched where
// they do not match the token pattern; Render never fails.
func Render(template string, p profile.Profile) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		field := token[1 : len(token)-1]
		v := p.Get(field)
		if v.IsAbsent() {
			return Placeholder
		}
		return v.Display()
	})
}

// Fields returns the field identifiers a template references, for the
// catalog loader's referential lint.
func Fields(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
