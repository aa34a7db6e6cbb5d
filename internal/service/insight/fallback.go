package insight

import "github.com/kapu/sheos-insight-go/internal/domain"

// Fallback literals. Each call builds a fresh value so callers may modify
// what they receive.

const (
	MentorEmptyFallback    = "Believe in yourself. You are capable of amazing things."
	MentorErrorFallback    = "Keep pushing forward, you're doing great."
	CompanionEmptyFallback = "I'm here for you. Tell me more."
	CompanionErrorFallback = "I'm having a little trouble connecting, but I'm still here with you."
)

func FallbackThreat() domain.ThreatAnalysis {
	return domain.ThreatAnalysis{
		DangerLevel:      5,
		Advice:           "Stay alert and move to a crowded area.",
		IsEmergency:      false,
		ContactsToNotify: true,
	}
}

func FallbackSentinel() domain.SentinelAnalysis {
	return domain.SentinelAnalysis{
		ThreatScore:  75,
		RiskLevel:    domain.RiskCaution,
		ActiveAlerts: []string{"AI Connectivity Issue", "Monitoring Locally"},
		AutoActions:  []string{"Standby SOS"},
		AIReasoning:  "Unable to reach cloud, reverting to local heuristics.",
	}
}

func FallbackHealth() domain.HealthInsight {
	return domain.HealthInsight{
		Prediction:     "General analysis unavailable",
		Recommendation: "Rest and hydrate.",
	}
}

func FallbackHealthTwin() domain.HealthTwinAnalysis {
	return domain.HealthTwinAnalysis{
		BodySyncScore: 82,
		PredictedRisks: []domain.HealthRisk{
			{Condition: "Luteal Phase Fatigue", Probability: 65, Timeline: "In 3 days"},
			{Condition: "Vitamin D Dip", Probability: 40, Timeline: "Gradual"},
		},
		HormonalTrend: "Progesterone rising, slightly elevated Cortisol.",
		ActionPlan: []domain.HealthAction{
			{Type: domain.ActionNutrition, Action: "Increase magnesium intake"},
			{Type: domain.ActionMind, Action: "10min meditation before sleep"},
		},
	}
}

func FallbackFinanceInsight() domain.FinanceInsight {
	return domain.FinanceInsight{
		SpendingStatus:     "Unknown",
		FinancialAbuseRisk: 0,
		SavingsTip:         "Monitor your expenses closely.",
	}
}

func FallbackFinanceForecast() domain.FinanceForecast {
	return domain.FinanceForecast{
		StabilityScore:            65,
		StabilityStatus:           domain.StabilityStable,
		PredictedRisks:            []string{"Low Emergency Fund", "Potential Career Break Impact"},
		EmotionalSpendingAnalysis: "Recent stress may trigger impulse buys on comfort items.",
		CareerGrowthPrediction:    "+15% income potential with Upskilling",
		InvestmentStrategy: []domain.Investment{
			{Title: "Sovereign Gold Bond", Type: domain.InvestmentGold, Description: "Safe, 2.5% interest + appreciation"},
			{Title: "Flexi-SIP", Type: domain.InvestmentSIP, Description: "Start small, increase annually"},
		},
		FutureTimeline: []domain.TimelineEvent{
			{Year: "2024", Event: "Emergency Fund Goal", ExpenseProjection: "$2000"},
			{Year: "2025", Event: "Career Upgrade", ExpenseProjection: "Invest $500 in course"},
		},
		RecommendedSkill: "Financial Negotiation",
	}
}

func FallbackEducationRoadmap() domain.EducationRoadmap {
	return domain.EducationRoadmap{
		JourneyTitle: "Empowerment Path",
		CareerMatch:  "Freelance Consultant",
		EmotionalTip: "Take it one step at a time.",
		Timeline: []domain.RoadmapPhase{
			{Phase: "Foundation", Duration: "1 Month", Focus: "Basics", Milestone: "First Certificate"},
		},
		WeeklySchedule: []domain.StudyDay{
			{Day: "Monday", Slots: []string{"10:00 AM Study"}, EnergyPrediction: domain.EnergyMedium},
		},
	}
}

func FallbackEmotionalMatches() []domain.EmotionalMatch {
	return []domain.EmotionalMatch{
		{
			ID:          "1",
			Name:        "Elena R.",
			Role:        "Senior Dev & Mom",
			MatchReason: "Balanced coding with motherhood.",
			IsVerified:  true,
			AvatarColor: domain.AvatarPurple,
		},
		{
			ID:          "2",
			Name:        "Sarah K.",
			Role:        "Startup Founder",
			MatchReason: "Overcame anxiety to launch biz.",
			IsVerified:  true,
			AvatarColor: domain.AvatarPink,
		},
	}
}

func FallbackCommunityAlerts() []domain.CommunityAlert {
	return []domain.CommunityAlert{
		{ID: "1", Type: domain.AlertDanger, Message: "Unlit street reported near Central Park West gate.", Location: "Sector 4", Time: "10m ago", VerifiedCount: 12},
		{ID: "2", Type: domain.AlertSafe, Message: "24/7 Women-only cafe opened.", Location: "Downtown", Time: "2h ago", VerifiedCount: 45},
		{ID: "3", Type: domain.AlertInfo, Message: "Free self-defense workshop this Sunday.", Location: "Community Center", Time: "5h ago", VerifiedCount: 88},
	}
}
