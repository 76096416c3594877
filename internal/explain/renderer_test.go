package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"regscope/internal/profile"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		profile  profile.Profile
		want     string
	}{
		{
			"substitutes answered field",
			"Betrieb mit {employeeCount} Mitarbeitern",
			profile.Profile{"employeeCount": profile.Choice("6-10")},
			"Betrieb mit 6-10 Mitarbeitern",
		},
		{
			"absent field renders placeholder",
			"Betrieb mit {employeeCount} Mitarbeitern",
			profile.Profile{},
			"Betrieb mit — Mitarbeitern",
		},
		{
			"list values joined",
			"Verarbeitet: {dataCategories}",
			profile.Profile{"dataCategories": profile.Multi("kundendaten", "mitarbeiterdaten")},
			"Verarbeitet: kundendaten, mitarbeiterdaten",
		},
		{
			"toggle values render as booleans",
			"Werkstatt vorhanden: {workshopPresent}",
			profile.Profile{"workshopPresent": profile.Toggle(true)},
			"Werkstatt vorhanden: true",
		},
		{
			"unmatched braces stay literal",
			"ein { offenes und {employeeCount}",
			profile.Profile{"employeeCount": profile.Choice("1-5")},
			"ein { offenes und 1-5",
		},
		{
			"empty brace pair stays literal",
			"nichts {} hier",
			profile.Profile{},
			"nichts {} hier",
		},
		{
			"no tokens passes through",
			"Gilt für alle Betriebe.",
			nil,
			"Gilt für alle Betriebe.",
		},
		{
			"multiple tokens",
			"{industry}: {employeeCount} Mitarbeiter, Website: {hasWebsite}",
			profile.Profile{
				"industry":      profile.Choice("tischlerei"),
				"employeeCount": profile.Choice("6-10"),
			},
			"tischlerei: 6-10 Mitarbeiter, Website: —",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.profile))
		})
	}
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"industry", "employeeCount"}, Fields("{industry} und {employeeCount}"))
	assert.Empty(t, Fields("keine Platzhalter"))
}
