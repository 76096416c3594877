package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"regscope/internal/profile"
	"regscope/internal/rules"
)

func testLayer() Layer {
	return Layer{
		ID:    "digital",
		Title: "Digitale Präsenz",
		Fields: []Field{
			{ID: "companyName", Label: "Firmenname", Type: FieldText, Required: true},
			{ID: "foundedAt", Label: "Gründungsdatum", Type: FieldDate, Required: true},
			{ID: "industry", Label: "Branche", Type: FieldSelect, Required: true},
			{ID: "dataCategories", Label: "Datenarten", Type: FieldMultiSelect, Required: true},
			{ID: "hasWebsite", Label: "Website vorhanden?", Type: FieldToggle, Required: true},
			{
				ID: "websiteUrl", Label: "Website-Adresse", Type: FieldText, Required: true,
				ShowWhen: &rules.Condition{Field: "hasWebsite", Operator: rules.OpTrue},
			},
		},
	}
}

func TestVisible(t *testing.T) {
	layer := testLayer()
	conditional := layer.Fields[5]

	assert.True(t, Visible(layer.Fields[0], nil), "unconditional fields are always visible")
	assert.False(t, Visible(conditional, profile.Profile{}))
	assert.False(t, Visible(conditional, profile.Profile{"hasWebsite": profile.Toggle(false)}))
	assert.True(t, Visible(conditional, profile.Profile{"hasWebsite": profile.Toggle(true)}))
}

func TestVisibleFields(t *testing.T) {
	layer := testLayer()

	hidden := VisibleFields(layer, profile.Profile{})
	assert.Len(t, hidden, 5, "conditional field hidden until its toggle is answered true")

	shown := VisibleFields(layer, profile.Profile{"hasWebsite": profile.Toggle(true)})
	assert.Len(t, shown, 6)
}

func TestValidateLayer(t *testing.T) {
	layer := testLayer()

	t.Run("empty answers report every visible required field", func(t *testing.T) {
		errs := ValidateLayer(layer, profile.Profile{})
		assert.Equal(t, map[string]ErrorKind{
			"companyName":    ErrTextRequired,
			"foundedAt":      ErrDateRequired,
			"industry":       ErrSelectRequired,
			"dataCategories": ErrMultiselectRequired,
		}, errs)
	})

	t.Run("toggle is never required-validated", func(t *testing.T) {
		errs := ValidateLayer(layer, profile.Profile{})
		_, present := errs["hasWebsite"]
		assert.False(t, present, "an unanswered toggle is not an error")
	})

	t.Run("empty string counts as missing", func(t *testing.T) {
		errs := ValidateLayer(layer, profile.Profile{"companyName": profile.Text("")})
		assert.Equal(t, ErrTextRequired, errs["companyName"])
	})

	t.Run("empty multi-select counts as missing", func(t *testing.T) {
		errs := ValidateLayer(layer, profile.Profile{"dataCategories": profile.Multi()})
		assert.Equal(t, ErrMultiselectRequired, errs["dataCategories"])
	})

	t.Run("invisible required field contributes no error", func(t *testing.T) {
		errs := ValidateLayer(layer, profile.Profile{"hasWebsite": profile.Toggle(false)})
		_, present := errs["websiteUrl"]
		assert.False(t, present)
	})

	t.Run("visible conditional field is validated", func(t *testing.T) {
		errs := ValidateLayer(layer, profile.Profile{"hasWebsite": profile.Toggle(true)})
		assert.Equal(t, ErrTextRequired, errs["websiteUrl"])
	})

	t.Run("complete answers validate clean", func(t *testing.T) {
		errs := ValidateLayer(layer, profile.Profile{
			"companyName":    profile.Text("Tischlerei Huber"),
			"foundedAt":      profile.Text("2019-04-01"),
			"industry":       profile.Choice("tischlerei"),
			"dataCategories": profile.Multi("kundendaten"),
			"hasWebsite":     profile.Toggle(false),
		})
		assert.Empty(t, errs)
	})
}

func TestCheckFieldsAndFieldIDs(t *testing.T) {
	layers := []Layer{
		{ID: "a", Fields: []Field{
			{ID: "industry", Type: FieldSelect},
			{ID: "privacyPolicy", Type: FieldToggle, ComplianceCheck: true},
		}},
		{ID: "b", Fields: []Field{
			{ID: "firstAidKit", Type: FieldToggle, ComplianceCheck: true},
		}},
	}

	assert.Equal(t, []string{"privacyPolicy", "firstAidKit"}, CheckFields(layers))

	ids := FieldIDs(layers)
	assert.Contains(t, ids, "industry")
	assert.Contains(t, ids, "firstAidKit")
	assert.Len(t, ids, 3)
}
