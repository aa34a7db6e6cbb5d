package domain

type ThreatAnalysis struct {
	DangerLevel      int    `json:"dangerLevel"`
	Advice           string `json:"advice"`
	IsEmergency      bool   `json:"isEmergency"`
	ContactsToNotify bool   `json:"contactsToNotify"`
}

type SentinelAnalysis struct {
	ThreatScore  int       `json:"threatScore"`
	RiskLevel    RiskLevel `json:"riskLevel"`
	ActiveAlerts []string  `json:"activeAlerts"`
	AutoActions  []string  `json:"autoActions"`
	AIReasoning  string    `json:"aiReasoning"`
}

type HealthInsight struct {
	Prediction     string `json:"prediction"`
	Recommendation string `json:"recommendation"`
	HormoneAlert   string `json:"hormoneAlert,omitempty"`
}

type HealthRisk struct {
	Condition   string `json:"condition"`
	Probability int    `json:"probability"`
	Timeline    string `json:"timeline"`
}

type HealthAction struct {
	Type   ActionType `json:"type"`
	Action string     `json:"action"`
}

type HealthTwinAnalysis struct {
	BodySyncScore  int            `json:"bodySyncScore"`
	PredictedRisks []HealthRisk   `json:"predictedRisks"`
	HormonalTrend  string         `json:"hormonalTrend"`
	ActionPlan     []HealthAction `json:"actionPlan"`
}

type FinanceInsight struct {
	SpendingStatus     string  `json:"spendingStatus"`
	FinancialAbuseRisk float64 `json:"financialAbuseRisk"`
	SavingsTip         string  `json:"savingsTip"`
}

type Investment struct {
	Title       string         `json:"title"`
	Type        InvestmentType `json:"type"`
	Description string         `json:"description"`
}

type TimelineEvent struct {
	Year              string `json:"year"`
	Event             string `json:"event"`
	ExpenseProjection string `json:"expenseProjection"`
}

type FinanceForecast struct {
	StabilityScore            int             `json:"stabilityScore"`
	StabilityStatus           StabilityStatus `json:"stabilityStatus"`
	PredictedRisks            []string        `json:"predictedRisks"`
	EmotionalSpendingAnalysis string          `json:"emotionalSpendingAnalysis"`
	CareerGrowthPrediction    string          `json:"careerGrowthPrediction"`
	InvestmentStrategy        []Investment    `json:"investmentStrategy"`
	FutureTimeline            []TimelineEvent `json:"futureTimeline"`
	RecommendedSkill          string          `json:"recommendedSkill"`
}

type MentorAdvice struct {
	Advice string `json:"advice"`
}

type RoadmapPhase struct {
	Phase     string `json:"phase"`
	Duration  string `json:"duration"`
	Focus     string `json:"focus"`
	Milestone string `json:"milestone"`
}

type StudyDay struct {
	Day              string      `json:"day"`
	Slots            []string    `json:"slots"`
	EnergyPrediction EnergyLevel `json:"energyPrediction"`
}

type EducationRoadmap struct {
	JourneyTitle   string         `json:"journeyTitle"`
	CareerMatch    string         `json:"careerMatch"`
	EmotionalTip   string         `json:"emotionalTip"`
	Timeline       []RoadmapPhase `json:"timeline"`
	WeeklySchedule []StudyDay     `json:"weeklySchedule"`
}

type EmotionalMatch struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Role        string      `json:"role"`
	MatchReason string      `json:"matchReason"`
	IsVerified  bool        `json:"isVerified"`
	AvatarColor AvatarColor `json:"avatarColor"`
}

type CommunityAlert struct {
	ID            string    `json:"id"`
	Type          AlertType `json:"type"`
	Message       string    `json:"message"`
	Location      string    `json:"location"`
	Time          string    `json:"time"`
	VerifiedCount int       `json:"verifiedCount"`
}

type CompanionReply struct {
	Reply string `json:"reply"`
}

// Result is a resolved insight. Value is always usable; Live is false when
// Value is the feature's fallback literal, and Reason then names the failure.
type Result[T any] struct {
	Value    T
	Live     bool
	Provider string
	Model    string
	Reason   string
}

// Envelope is the wire form of a Result.
type Envelope struct {
	Feature  Feature `json:"feature"`
	Live     bool    `json:"live"`
	Reason   string  `json:"reason,omitempty"`
	Provider string  `json:"provider,omitempty"`
	Model    string  `json:"model,omitempty"`
	Result   any     `json:"result"`
}

func (r Result[T]) Envelope(feature Feature) Envelope {
	return Envelope{
		Feature:  feature,
		Live:     r.Live,
		Reason:   r.Reason,
		Provider: r.Provider,
		Model:    r.Model,
		Result:   r.Value,
	}
}
