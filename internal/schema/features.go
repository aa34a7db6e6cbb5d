package schema

import (
	"github.com/kapu/sheos-insight-go/internal/domain"
)

var declarations = map[domain.Feature]*Schema{
	domain.FeatureThreat: Object(map[string]*Schema{
		"dangerLevel":      Integer("How dangerous the situation is.", 1, 10),
		"advice":           String("Short, concrete safety advice."),
		"isEmergency":      Boolean("True when the user needs help now."),
		"contactsToNotify": Boolean("True when trusted contacts should be alerted."),
	}, "dangerLevel", "advice", "isEmergency", "contactsToNotify"),

	domain.FeatureSentinel: Object(map[string]*Schema{
		"threatScore":  Integer("Overall threat score.", 0, 100),
		"riskLevel":    Enum("Risk classification.", domain.Strings(domain.RiskLevels)),
		"activeAlerts": ArrayOf(String("Alert shown to the user."), "Currently active alerts."),
		"autoActions":  ArrayOf(String("Action SHE-OS takes automatically."), "Automatic actions."),
		"aiReasoning":  String("One sentence explaining the assessment."),
	}, "threatScore", "riskLevel", "activeAlerts", "autoActions", "aiReasoning"),

	domain.FeatureHealth: Object(map[string]*Schema{
		"prediction":     String("What the body is likely going through."),
		"recommendation": String("One practical recommendation."),
		"hormoneAlert":   String("Hormonal imbalance warning, if any."),
	}, "prediction", "recommendation"),

	domain.FeatureHealthTwin: Object(map[string]*Schema{
		"bodySyncScore": Integer("Body Sync Score.", 0, 100),
		"predictedRisks": ArrayOf(Record(map[string]*Schema{
			"condition":   String("Predicted condition."),
			"probability": Integer("Likelihood in percent.", 0, 100),
			"timeline":    String("When the risk may appear."),
		}), "Predicted health risks."),
		"hormonalTrend": String("Hormonal trend in one sentence."),
		"actionPlan": ArrayOf(Record(map[string]*Schema{
			"type":   Enum("Action category.", domain.Strings(domain.ActionTypes)),
			"action": String("What to do."),
		}), "Recommended actions."),
	}, "bodySyncScore", "predictedRisks", "hormonalTrend", "actionPlan"),

	domain.FeatureFinanceAbuse: Object(map[string]*Schema{
		"spendingStatus":     String("Spending status in a few words."),
		"financialAbuseRisk": Number("Risk of financial abuse.", 0, 100),
		"savingsTip":         String("One savings tip."),
	}, "spendingStatus", "financialAbuseRisk", "savingsTip"),

	domain.FeatureFinanceForecast: Object(map[string]*Schema{
		"stabilityScore":            Integer("Financial stability score.", 0, 100),
		"stabilityStatus":           Enum("Financial stability status.", domain.Strings(domain.StabilityStatuses)),
		"predictedRisks":            ArrayOf(String("Predicted financial risk."), "Predicted risks."),
		"emotionalSpendingAnalysis": String("Emotional spending triggers."),
		"careerGrowthPrediction":    String("Career growth prediction."),
		"investmentStrategy": ArrayOf(Record(map[string]*Schema{
			"title":       String("Investment name."),
			"type":        Enum("Investment category.", domain.Strings(domain.InvestmentTypes)),
			"description": String("Why it fits."),
		}), "Suggested investments."),
		"futureTimeline": ArrayOf(Record(map[string]*Schema{
			"year":              String("Year."),
			"event":             String("Milestone."),
			"expenseProjection": String("Projected expense."),
		}), "Year by year timeline."),
		"recommendedSkill": String("Skill to learn next."),
	}, "stabilityScore", "stabilityStatus", "predictedRisks", "emotionalSpendingAnalysis",
		"careerGrowthPrediction", "investmentStrategy", "futureTimeline", "recommendedSkill"),

	domain.FeatureEducationRoadmap: Object(map[string]*Schema{
		"journeyTitle": String("Title of the learning journey."),
		"careerMatch":  String("Career the roadmap leads to."),
		"emotionalTip": String("Encouraging tip for the learner's mood."),
		"timeline": ArrayOf(Record(map[string]*Schema{
			"phase":     String("Phase name."),
			"duration":  String("Phase duration."),
			"focus":     String("What to focus on."),
			"milestone": String("Milestone that ends the phase."),
		}), "Roadmap phases."),
		"weeklySchedule": ArrayOf(Record(map[string]*Schema{
			"day":              String("Day of the week."),
			"slots":            ArrayOf(String("Study slot."), "Study slots."),
			"energyPrediction": Enum("Predicted energy.", domain.Strings(domain.EnergyLevels)),
		}), "Weekly study schedule."),
	}, "journeyTitle", "careerMatch", "emotionalTip", "timeline", "weeklySchedule"),

	domain.FeatureEmotionalMatch: ArrayOf(Record(map[string]*Schema{
		"id":          String("Peer id."),
		"name":        String("Fictional peer name."),
		"role":        String("Peer role."),
		"matchReason": String("Why the peer matches."),
		"isVerified":  Boolean("Whether the peer is verified."),
		"avatarColor": Enum("Avatar background class.", domain.Strings(domain.AvatarColors)),
	}), "Matched peers."),

	domain.FeatureCommunityAlerts: ArrayOf(Record(map[string]*Schema{
		"id":            String("Alert id."),
		"type":          Enum("Alert type.", domain.Strings(domain.AlertTypes)),
		"message":       String("Alert text."),
		"location":      String("Where it applies."),
		"time":          String("Relative time, e.g. 10m ago."),
		"verifiedCount": Integer("How many members verified it.", 0, 0),
	}), "Community safety alerts."),
}

// For returns the response schema of a JSON feature. Free-text features
// have no schema.
func For(feature domain.Feature) (*Schema, bool) {
	s, ok := declarations[feature]
	return s, ok
}

func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// Record is an object that requires every one of its properties.
func Record(props map[string]*Schema) *Schema {
	s := &Schema{Type: TypeObject, Properties: props}
	s.Required = s.PropertyNames()
	return s
}

func ArrayOf(items *Schema, description string) *Schema {
	return &Schema{Type: TypeArray, Items: items, Description: description}
}

func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func Boolean(description string) *Schema {
	return &Schema{Type: TypeBoolean, Description: description}
}

func Enum(description string, values []string) *Schema {
	return &Schema{Type: TypeString, Description: description, Enum: values}
}

// Integer declares an integer with an advisory range. A range with hi <= lo
// only sets the lower bound.
func Integer(description string, lo, hi float64) *Schema {
	return withRange(&Schema{Type: TypeInteger, Description: description}, lo, hi)
}

func Number(description string, lo, hi float64) *Schema {
	return withRange(&Schema{Type: TypeNumber, Description: description}, lo, hi)
}

func withRange(s *Schema, lo, hi float64) *Schema {
	s.Minimum = &lo
	if hi > lo {
		s.Maximum = &hi
	}
	return s
}
