package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

func mustSchema(t *testing.T, f domain.Feature) *Schema {
	t.Helper()
	s, ok := For(f)
	require.True(t, ok, f)
	return s
}

func TestFor_DeclaresEveryJSONFeature(t *testing.T) {
	for _, f := range domain.Features {
		_, ok := For(f)
		assert.Equal(t, !f.FreeText(), ok, f)
	}
}

func TestValidate_Threat(t *testing.T) {
	s := mustSchema(t, domain.FeatureThreat)

	tests := []struct {
		name string
		doc  string
		kind errors.Kind
	}{
		{"valid", `{"dangerLevel":8,"advice":"Move to a lit area","isEmergency":true,"contactsToNotify":true}`, ""},
		{"missing fields", `{"dangerLevel":8,"advice":"run"}`, errors.KindSchemaViolation},
		{"wrong type", `{"dangerLevel":"high","advice":"run","isEmergency":true,"contactsToNotify":true}`, errors.KindSchemaViolation},
		{"fractional integer", `{"dangerLevel":7.5,"advice":"run","isEmergency":true,"contactsToNotify":true}`, errors.KindSchemaViolation},
		{"out of range is allowed", `{"dangerLevel":42,"advice":"run","isEmergency":true,"contactsToNotify":true}`, ""},
		{"not json", `{not json`, errors.KindMalformedJSON},
		{"empty", ``, errors.KindMalformedJSON},
		{"array instead of object", `[]`, errors.KindSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate([]byte(tt.doc))
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}
}

func TestValidate_EnumMembership(t *testing.T) {
	s := mustSchema(t, domain.FeatureSentinel)

	ok := `{"threatScore":10,"riskLevel":"SAFE","activeAlerts":[],"autoActions":[],"aiReasoning":"calm"}`
	require.NoError(t, s.Validate([]byte(ok)))

	bad := `{"threatScore":10,"riskLevel":"HIGH","activeAlerts":[],"autoActions":[],"aiReasoning":"calm"}`
	err := s.Validate([]byte(bad))
	require.Error(t, err)
	assert.Equal(t, errors.KindSchemaViolation, errors.KindOf(err))
}

func TestValidate_NestedItemsRequireAllProperties(t *testing.T) {
	s := mustSchema(t, domain.FeatureCommunityAlerts)

	ok := `[{"id":"1","type":"INFO","message":"m","location":"l","time":"now","verifiedCount":3}]`
	require.NoError(t, s.Validate([]byte(ok)))

	missing := `[{"id":"1","type":"INFO","message":"m","location":"l","time":"now"}]`
	assert.Error(t, s.Validate([]byte(missing)))
}

func TestValidate_HealthHormoneAlertOptional(t *testing.T) {
	s := mustSchema(t, domain.FeatureHealth)
	assert.NoError(t, s.Validate([]byte(`{"prediction":"PMS","recommendation":"Rest"}`)))
}

func TestToGenAI(t *testing.T) {
	g := mustSchema(t, domain.FeatureThreat).ToGenAI()

	assert.Equal(t, genai.TypeObject, g.Type)
	assert.ElementsMatch(t, []string{"dangerLevel", "advice", "isEmergency", "contactsToNotify"}, g.Required)
	require.Contains(t, g.Properties, "dangerLevel")
	assert.Equal(t, genai.TypeInteger, g.Properties["dangerLevel"].Type)
	assert.Contains(t, g.Properties["dangerLevel"].Description, "Range 1 to 10.")

	sentinel := mustSchema(t, domain.FeatureSentinel).ToGenAI()
	assert.Equal(t, []string{"SAFE", "CAUTION", "DANGER", "CRITICAL"}, sentinel.Properties["riskLevel"].Enum)
	assert.Equal(t, genai.TypeString, sentinel.Properties["activeAlerts"].Items.Type)
}

func TestJSONSchema(t *testing.T) {
	doc := mustSchema(t, domain.FeatureEmotionalMatch).JSONSchema()

	assert.Equal(t, "array", doc["type"])
	items, ok := doc["items"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, items["required"], 6)
	assert.NotContains(t, items, "minimum")

	var nilSchema *Schema
	assert.Empty(t, nilSchema.JSONSchema())
	assert.Nil(t, nilSchema.ToGenAI())
}
