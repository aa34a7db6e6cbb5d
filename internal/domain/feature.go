package domain

import "strings"

// Feature names one insight operation. The value is the wire name used by the
// HTTP API, the CLI and the state keys.
type Feature string

const (
	FeatureThreat           Feature = "threat"
	FeatureSentinel         Feature = "sentinel"
	FeatureHealth           Feature = "health"
	FeatureHealthTwin       Feature = "health_twin"
	FeatureFinanceAbuse     Feature = "finance_abuse"
	FeatureFinanceForecast  Feature = "finance_forecast"
	FeatureMentor           Feature = "mentor"
	FeatureEducationRoadmap Feature = "education_roadmap"
	FeatureEmotionalMatch   Feature = "emotional_match"
	FeatureCommunityAlerts  Feature = "community_alerts"
	FeatureCompanion        Feature = "companion"
)

// Features lists every feature in display order.
var Features = []Feature{
	FeatureThreat,
	FeatureSentinel,
	FeatureHealth,
	FeatureHealthTwin,
	FeatureFinanceAbuse,
	FeatureFinanceForecast,
	FeatureMentor,
	FeatureEducationRoadmap,
	FeatureEmotionalMatch,
	FeatureCommunityAlerts,
	FeatureCompanion,
}

func (f Feature) String() string {
	return string(f)
}

func (f Feature) IsValid() bool {
	return oneOf(f, Features)
}

// FreeText reports whether the feature answers with plain text instead of a
// schema-constrained JSON document.
func (f Feature) FreeText() bool {
	return f == FeatureMentor || f == FeatureCompanion
}

// ParseFeature resolves a wire name case-insensitively.
func ParseFeature(name string) (Feature, bool) {
	f := Feature(strings.ToLower(strings.TrimSpace(name)))
	return f, f.IsValid()
}
