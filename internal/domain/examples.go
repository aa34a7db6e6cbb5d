package domain

// ExampleProfile returns a filled-in profile for the feature, as offered by
// the client's preset menus. ok is false for an unknown feature.
func ExampleProfile(feature Feature) (profile Profile, ok bool) {
	switch feature {
	case FeatureThreat:
		return ThreatProfile{Situation: "A man has been following me for three blocks and the street is empty."}, true
	case FeatureSentinel:
		return SentinelSensorData{
			HeartRate:       118,
			MotionType:      MotionSuspiciousFollowing,
			AudioLevel:      AudioNormal,
			LocationContext: LocationUnlitLane,
		}, true
	case FeatureHealth:
		return HealthProfile{CycleDay: 24, Symptoms: "Cramps, bloating and low mood"}, true
	case FeatureHealthTwin:
		return HealthTwinProfile{
			CyclePhase:     "Luteal",
			SleepAvg:       6.5,
			StressLevel:    StressHigh,
			ActivityLevel:  ActivitySedentary,
			RecentSymptoms: []string{"Fatigue", "Headache"},
		}, true
	case FeatureFinanceAbuse:
		return TransactionProfile{RecentTransactions: "Rent $1200, transfer to partner $900, groceries $150, transfer to partner $600"}, true
	case FeatureFinanceForecast:
		return FinanceProfile{
			MonthlyIncome: 4200,
			Savings:       3000,
			CareerStage:   CareerMidLevel,
			LifeStatus:    LifeMother,
			FinancialGoal: "Build a 6 month emergency fund",
			RecentMood:    FinanceMoodStressed,
		}, true
	case FeatureMentor:
		return MentorProfile{Mood: "Doubtful", Topic: "Asking for a promotion"}, true
	case FeatureEducationRoadmap:
		return EducationProfile{
			Role:        RoleMother,
			Goal:        "Become a data analyst",
			HoursPerDay: 1.5,
			CurrentMood: LearnerOverwhelmed,
		}, true
	case FeatureEmotionalMatch:
		return MatchProfile{Mood: "Anxious", Goal: "Return to work after maternity leave"}, true
	case FeatureCommunityAlerts:
		return CommunityProfile{City: "New York"}, true
	case FeatureCompanion:
		return CompanionMessage{Message: "I'm walking home alone and I feel a bit uneasy."}, true
	}
	return nil, false
}
