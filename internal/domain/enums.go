package domain

// Enumerated values shared by request profiles and model responses. Each set
// mirrors the fixed menus the client offers and the enum lists declared in
// the response schemas.

type MotionType string

const (
	MotionStationary          MotionType = "Stationary"
	MotionWalking             MotionType = "Walking"
	MotionRunning             MotionType = "Running"
	MotionImpactFall          MotionType = "Impact/Fall"
	MotionSuspiciousFollowing MotionType = "Suspicious Following"
	MotionAggressiveMovement  MotionType = "Aggressive Movement"
)

var MotionTypes = []MotionType{
	MotionStationary, MotionWalking, MotionRunning, MotionImpactFall,
	MotionSuspiciousFollowing, MotionAggressiveMovement,
}

type AudioLevel string

const (
	AudioQuiet    AudioLevel = "Quiet"
	AudioNormal   AudioLevel = "Normal"
	AudioLoud     AudioLevel = "Loud"
	AudioDistress AudioLevel = "Distress"
)

var AudioLevels = []AudioLevel{AudioQuiet, AudioNormal, AudioLoud, AudioDistress}

type LocationContext string

const (
	LocationHome          LocationContext = "Home"
	LocationPublic        LocationContext = "Public"
	LocationUnknownRisk   LocationContext = "Unknown/Risk"
	LocationUnlitLane     LocationContext = "Unlit Lane"
	LocationHighCrimeZone LocationContext = "High-Crime Zone"
)

var LocationContexts = []LocationContext{
	LocationHome, LocationPublic, LocationUnknownRisk, LocationUnlitLane, LocationHighCrimeZone,
}

type RiskLevel string

const (
	RiskSafe     RiskLevel = "SAFE"
	RiskCaution  RiskLevel = "CAUTION"
	RiskDanger   RiskLevel = "DANGER"
	RiskCritical RiskLevel = "CRITICAL"
)

var RiskLevels = []RiskLevel{RiskSafe, RiskCaution, RiskDanger, RiskCritical}

type StressLevel string

const (
	StressLow      StressLevel = "Low"
	StressModerate StressLevel = "Moderate"
	StressHigh     StressLevel = "High"
)

var StressLevels = []StressLevel{StressLow, StressModerate, StressHigh}

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "Sedentary"
	ActivityActive    ActivityLevel = "Active"
	ActivityAthletic  ActivityLevel = "Athletic"
)

var ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityActive, ActivityAthletic}

type ActionType string

const (
	ActionNutrition ActionType = "Nutrition"
	ActionFitness   ActionType = "Fitness"
	ActionMind      ActionType = "Mind"
)

var ActionTypes = []ActionType{ActionNutrition, ActionFitness, ActionMind}

type CareerStage string

const (
	CareerEntry    CareerStage = "Entry"
	CareerMidLevel CareerStage = "Mid-Level"
	CareerSenior   CareerStage = "Senior"
	CareerBreak    CareerStage = "Career Break"
	CareerStudent  CareerStage = "Student"
)

var CareerStages = []CareerStage{CareerEntry, CareerMidLevel, CareerSenior, CareerBreak, CareerStudent}

type LifeStatus string

const (
	LifeSingle       LifeStatus = "Single"
	LifeMarried      LifeStatus = "Married"
	LifeMother       LifeStatus = "Mother"
	LifeSingleMother LifeStatus = "Single Mother"
)

var LifeStatuses = []LifeStatus{LifeSingle, LifeMarried, LifeMother, LifeSingleMother}

type FinanceMood string

const (
	FinanceMoodStressed FinanceMood = "Stressed"
	FinanceMoodHappy    FinanceMood = "Happy"
	FinanceMoodAnxious  FinanceMood = "Anxious"
	FinanceMoodNeutral  FinanceMood = "Neutral"
)

var FinanceMoods = []FinanceMood{FinanceMoodStressed, FinanceMoodHappy, FinanceMoodAnxious, FinanceMoodNeutral}

type StabilityStatus string

const (
	StabilitySecure   StabilityStatus = "Secure"
	StabilityStable   StabilityStatus = "Stable"
	StabilityAtRisk   StabilityStatus = "At Risk"
	StabilityCritical StabilityStatus = "Critical"
)

var StabilityStatuses = []StabilityStatus{StabilitySecure, StabilityStable, StabilityAtRisk, StabilityCritical}

type InvestmentType string

const (
	InvestmentGold       InvestmentType = "Gold"
	InvestmentSIP        InvestmentType = "SIP"
	InvestmentGovtScheme InvestmentType = "Govt Scheme"
	InvestmentLowRisk    InvestmentType = "Low Risk"
)

var InvestmentTypes = []InvestmentType{InvestmentGold, InvestmentSIP, InvestmentGovtScheme, InvestmentLowRisk}

type EducationRole string

const (
	RoleStudent      EducationRole = "Student"
	RoleProfessional EducationRole = "Professional"
	RoleHomemaker    EducationRole = "Homemaker"
	RoleMother       EducationRole = "Mother"
	RoleEntrepreneur EducationRole = "Entrepreneur"
)

var EducationRoles = []EducationRole{RoleStudent, RoleProfessional, RoleHomemaker, RoleMother, RoleEntrepreneur}

type LearnerMood string

const (
	LearnerMotivated   LearnerMood = "Motivated"
	LearnerOverwhelmed LearnerMood = "Overwhelmed"
	LearnerCurious     LearnerMood = "Curious"
	LearnerTired       LearnerMood = "Tired"
)

var LearnerMoods = []LearnerMood{LearnerMotivated, LearnerOverwhelmed, LearnerCurious, LearnerTired}

type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "High"
	EnergyMedium EnergyLevel = "Medium"
	EnergyLow    EnergyLevel = "Low"
)

var EnergyLevels = []EnergyLevel{EnergyHigh, EnergyMedium, EnergyLow}

type AvatarColor string

const (
	AvatarPink   AvatarColor = "bg-pink-100"
	AvatarPurple AvatarColor = "bg-purple-100"
	AvatarBlue   AvatarColor = "bg-blue-100"
	AvatarGreen  AvatarColor = "bg-green-100"
)

var AvatarColors = []AvatarColor{AvatarPink, AvatarPurple, AvatarBlue, AvatarGreen}

type AlertType string

const (
	AlertSafe   AlertType = "SAFE"
	AlertDanger AlertType = "DANGER"
	AlertInfo   AlertType = "INFO"
)

var AlertTypes = []AlertType{AlertSafe, AlertDanger, AlertInfo}

// Strings converts a typed enum slice into its raw string values.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func oneOf[T ~string](value T, allowed []T) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
