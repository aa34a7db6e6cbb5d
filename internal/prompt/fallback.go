package prompt

import (
	"strings"

	"github.com/kapu/sheos-insight-go/internal/domain"
)

type fallbackSpec struct {
	persona string
	rules   []string
}

var fallbackSpecs = map[domain.Feature]fallbackSpec{
	domain.FeatureThreat: {
		persona: "You are SheOS, a personal safety assistant for women. Analyze how dangerous this situation is.",
		rules:   []string{"Put the user's physical safety first.", "Rate danger from 1 to 10."},
	},
	domain.FeatureSentinel: {
		persona: "You are the Predictive Safety AI for SHE-OS. Assess the risk of this sensor snapshot.",
		rules: []string{
			"Suspicious Following or Aggressive Movement means the risk is at least DANGER.",
			"A High-Crime Zone at a late hour increases the risk.",
			"Distress audio means the risk is CRITICAL.",
		},
	},
	domain.FeatureHealth: {
		persona: "You are a women's health assistant. Interpret these symptoms for the cycle day.",
		rules:   []string{"Never diagnose."},
	},
	domain.FeatureHealthTwin: {
		persona: "You are a Digital Health Twin for women. Forecast health risks and a Body Sync Score.",
		rules:   []string{"Probabilities and scores are 0 to 100."},
	},
	domain.FeatureFinanceAbuse: {
		persona: "You are a financial safety assistant. Detect signs of financial abuse in these transactions.",
		rules:   []string{"Rate the abuse risk from 0 to 100."},
	},
	domain.FeatureFinanceForecast: {
		persona: "You are a Women's Financial Life Coach. Forecast this user's financial future.",
		rules:   []string{"Suggest Gold, SIP, Govt Scheme or Low Risk investments."},
	},
	domain.FeatureMentor: {
		persona: "You are a supportive female mentor.",
		rules:   []string{"Give encouraging advice in exactly 2 sentences."},
	},
	domain.FeatureEducationRoadmap: {
		persona: "You are an AI learning coach for women. Create a learning roadmap.",
		rules: []string{
			"Mothers and homemakers get flexible slots around nap times and school hours.",
			"Overwhelmed learners get micro-learning with self-care breaks.",
		},
	},
	domain.FeatureEmotionalMatch: {
		persona: "You are the peer matching engine of a women's support community.",
		rules:   []string{"Return exactly 3 fictional, verified peer profiles."},
	},
	domain.FeatureCommunityAlerts: {
		persona: "You are the community safety feed of SheOS.",
		rules:   []string{"Return 3 short alerts of type SAFE, DANGER or INFO."},
	},
	domain.FeatureCompanion: {
		persona: "You are SheOS, a warm and protective AI companion for women, like a supportive big sister.",
		rules:   []string{"Keep the reply to 2 or 3 sentences.", "If the user mentions danger, give safety advice first."},
	},
}

// FallbackPrompt renders a feature prompt without templates.
func FallbackPrompt(feature domain.Feature, data PromptData) string {
	spec, ok := fallbackSpecs[feature]
	if !ok {
		spec = fallbackSpec{persona: "You are SheOS, an AI assistant for women's safety and wellbeing."}
	}

	var sb strings.Builder
	sb.WriteString(spec.persona)
	sb.WriteString("\n\n## Profile\n")
	for _, f := range data.Fields {
		sb.WriteString("- ")
		sb.WriteString(f.Label)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
		sb.WriteString("\n")
	}

	if len(spec.rules) > 0 {
		sb.WriteString("\n## Rules\n")
		for _, r := range spec.rules {
			sb.WriteString("- ")
			sb.WriteString(r)
			sb.WriteString("\n")
		}
	}

	if !feature.FreeText() {
		sb.WriteString("\nReturn JSON only, matching the declared schema.")
	}

	language := data.Language
	if strings.TrimSpace(language) == "" {
		language = domain.Locale{}.TargetLanguage()
	}
	sb.WriteString("\nRespond in ")
	sb.WriteString(language)
	sb.WriteString(".")

	return sb.String()
}
