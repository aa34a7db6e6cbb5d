package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

// Field is one labeled value of a request profile as it appears in a prompt.
type Field struct {
	Label string
	Value string
}

// Profile is the typed input of one insight request. Fields must list every
// field of the profile except the language, in declaration order.
type Profile interface {
	Feature() Feature
	Fields() []Field
	TargetLanguage() string
	Validate() error
}

// Locale carries the language the model should answer in. It is passed to the
// model verbatim; an empty value means English.
type Locale struct {
	Language string `json:"language,omitempty"`
}

func (l Locale) TargetLanguage() string {
	if lang := strings.TrimSpace(l.Language); lang != "" {
		return lang
	}
	return constants.ModelDefaults.Language
}

type ThreatProfile struct {
	Locale
	Situation string `json:"situation"`
}

func (p ThreatProfile) Feature() Feature { return FeatureThreat }

func (p ThreatProfile) Fields() []Field {
	return []Field{{"Situation", p.Situation}}
}

func (p ThreatProfile) Validate() error {
	return requireText("situation", p.Situation)
}

// SentinelSensorData is an operator-selected snapshot from the simulation
// menu, not fused sensor input.
type SentinelSensorData struct {
	Locale
	HeartRate       int             `json:"heartRate"`
	MotionType      MotionType      `json:"motionType"`
	AudioLevel      AudioLevel      `json:"audioLevel"`
	LocationContext LocationContext `json:"locationContext"`
}

func (p SentinelSensorData) Feature() Feature { return FeatureSentinel }

func (p SentinelSensorData) Fields() []Field {
	return []Field{
		{"Heart Rate", fmt.Sprintf("%d bpm", p.HeartRate)},
		{"Motion Pattern", string(p.MotionType)},
		{"Audio Analysis", string(p.AudioLevel)},
		{"Location Context", string(p.LocationContext)},
	}
}

func (p SentinelSensorData) Validate() error {
	if p.HeartRate <= 0 || p.HeartRate > 250 {
		return errors.NewValidationError("must be between 1 and 250", "heartRate", p.HeartRate)
	}
	if err := requireEnum("motionType", p.MotionType, MotionTypes); err != nil {
		return err
	}
	if err := requireEnum("audioLevel", p.AudioLevel, AudioLevels); err != nil {
		return err
	}
	return requireEnum("locationContext", p.LocationContext, LocationContexts)
}

type HealthProfile struct {
	Locale
	CycleDay int    `json:"cycleDay"`
	Symptoms string `json:"symptoms"`
}

func (p HealthProfile) Feature() Feature { return FeatureHealth }

func (p HealthProfile) Fields() []Field {
	return []Field{
		{"Cycle Day", strconv.Itoa(p.CycleDay)},
		{"Symptoms", p.Symptoms},
	}
}

func (p HealthProfile) Validate() error {
	if p.CycleDay < 1 || p.CycleDay > 60 {
		return errors.NewValidationError("must be between 1 and 60", "cycleDay", p.CycleDay)
	}
	return requireText("symptoms", p.Symptoms)
}

type HealthTwinProfile struct {
	Locale
	CyclePhase     string        `json:"cyclePhase"`
	SleepAvg       float64       `json:"sleepAvg"`
	StressLevel    StressLevel   `json:"stressLevel"`
	ActivityLevel  ActivityLevel `json:"activityLevel"`
	RecentSymptoms []string      `json:"recentSymptoms"`
}

func (p HealthTwinProfile) Feature() Feature { return FeatureHealthTwin }

func (p HealthTwinProfile) Fields() []Field {
	return []Field{
		{"Cycle Phase", p.CyclePhase},
		{"Sleep", formatNumber(p.SleepAvg) + "h avg"},
		{"Stress", string(p.StressLevel)},
		{"Activity", string(p.ActivityLevel)},
		{"Recent Symptoms", formatList(p.RecentSymptoms)},
	}
}

func (p HealthTwinProfile) Validate() error {
	if err := requireText("cyclePhase", p.CyclePhase); err != nil {
		return err
	}
	if p.SleepAvg < 0 || p.SleepAvg > 24 {
		return errors.NewValidationError("must be between 0 and 24", "sleepAvg", p.SleepAvg)
	}
	if err := requireEnum("stressLevel", p.StressLevel, StressLevels); err != nil {
		return err
	}
	if err := requireEnum("activityLevel", p.ActivityLevel, ActivityLevels); err != nil {
		return err
	}
	return requireList("recentSymptoms", p.RecentSymptoms)
}

type TransactionProfile struct {
	Locale
	RecentTransactions string `json:"recentTransactions"`
}

func (p TransactionProfile) Feature() Feature { return FeatureFinanceAbuse }

func (p TransactionProfile) Fields() []Field {
	return []Field{{"Recent Transactions", p.RecentTransactions}}
}

func (p TransactionProfile) Validate() error {
	return requireText("recentTransactions", p.RecentTransactions)
}

type FinanceProfile struct {
	Locale
	MonthlyIncome float64     `json:"monthlyIncome"`
	Savings       float64     `json:"savings"`
	CareerStage   CareerStage `json:"careerStage"`
	LifeStatus    LifeStatus  `json:"lifeStatus"`
	FinancialGoal string      `json:"financialGoal"`
	RecentMood    FinanceMood `json:"recentMood"`
}

func (p FinanceProfile) Feature() Feature { return FeatureFinanceForecast }

func (p FinanceProfile) Fields() []Field {
	return []Field{
		{"Income", "$" + formatNumber(p.MonthlyIncome)},
		{"Savings", "$" + formatNumber(p.Savings)},
		{"Stage", string(p.CareerStage)},
		{"Status", string(p.LifeStatus)},
		{"Goal", p.FinancialGoal},
		{"Mood", string(p.RecentMood)},
	}
}

func (p FinanceProfile) Validate() error {
	if p.MonthlyIncome < 0 {
		return errors.NewValidationError("must not be negative", "monthlyIncome", p.MonthlyIncome)
	}
	if p.Savings < 0 {
		return errors.NewValidationError("must not be negative", "savings", p.Savings)
	}
	if err := requireEnum("careerStage", p.CareerStage, CareerStages); err != nil {
		return err
	}
	if err := requireEnum("lifeStatus", p.LifeStatus, LifeStatuses); err != nil {
		return err
	}
	if err := requireText("financialGoal", p.FinancialGoal); err != nil {
		return err
	}
	return requireEnum("recentMood", p.RecentMood, FinanceMoods)
}

type MentorProfile struct {
	Locale
	Mood  string `json:"mood"`
	Topic string `json:"topic"`
}

func (p MentorProfile) Feature() Feature { return FeatureMentor }

func (p MentorProfile) Fields() []Field {
	return []Field{
		{"User mood", p.Mood},
		{"Topic", p.Topic},
	}
}

func (p MentorProfile) Validate() error {
	if err := requireText("topic", p.Topic); err != nil {
		return err
	}
	return requireText("mood", p.Mood)
}

type EducationProfile struct {
	Locale
	Role        EducationRole `json:"role"`
	Goal        string        `json:"goal"`
	HoursPerDay float64       `json:"hoursPerDay"`
	CurrentMood LearnerMood   `json:"currentMood"`
}

func (p EducationProfile) Feature() Feature { return FeatureEducationRoadmap }

func (p EducationProfile) Fields() []Field {
	return []Field{
		{"Role", string(p.Role)},
		{"Goal", p.Goal},
		{"Hours/Day", formatNumber(p.HoursPerDay)},
		{"Mood", string(p.CurrentMood)},
	}
}

func (p EducationProfile) Validate() error {
	if err := requireEnum("role", p.Role, EducationRoles); err != nil {
		return err
	}
	if err := requireText("goal", p.Goal); err != nil {
		return err
	}
	if p.HoursPerDay <= 0 || p.HoursPerDay > 24 {
		return errors.NewValidationError("must be between 0 and 24", "hoursPerDay", p.HoursPerDay)
	}
	return requireEnum("currentMood", p.CurrentMood, LearnerMoods)
}

type MatchProfile struct {
	Locale
	Mood string `json:"mood"`
	Goal string `json:"goal"`
}

func (p MatchProfile) Feature() Feature { return FeatureEmotionalMatch }

func (p MatchProfile) Fields() []Field {
	return []Field{
		{"Feeling", p.Mood},
		{"Goal", p.Goal},
	}
}

func (p MatchProfile) Validate() error {
	if err := requireText("mood", p.Mood); err != nil {
		return err
	}
	return requireText("goal", p.Goal)
}

type CommunityProfile struct {
	Locale
	City string `json:"city"`
}

func (p CommunityProfile) Feature() Feature { return FeatureCommunityAlerts }

func (p CommunityProfile) Fields() []Field {
	return []Field{{"City", p.City}}
}

func (p CommunityProfile) Validate() error {
	return requireText("city", p.City)
}

type CompanionMessage struct {
	Locale
	Message string `json:"message"`
}

func (p CompanionMessage) Feature() Feature { return FeatureCompanion }

func (p CompanionMessage) Fields() []Field {
	return []Field{{"User says", p.Message}}
}

func (p CompanionMessage) Validate() error {
	return requireText("message", p.Message)
}

func requireText(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errors.NewValidationError("is required", field, value)
	}
	if len([]rune(trimmed)) > constants.AIInputLimits.MaxTextLength {
		return errors.NewValidationError(
			fmt.Sprintf("must be at most %d characters", constants.AIInputLimits.MaxTextLength), field, len(trimmed))
	}
	return nil
}

func requireList(field string, values []string) error {
	if len(values) > constants.AIInputLimits.MaxListItems {
		return errors.NewValidationError(
			fmt.Sprintf("must have at most %d items", constants.AIInputLimits.MaxListItems), field, len(values))
	}
	for i, v := range values {
		if err := requireText(fmt.Sprintf("%s[%d]", field, i), v); err != nil {
			return err
		}
	}
	return nil
}

func requireEnum[T ~string](field string, value T, allowed []T) error {
	if !oneOf(value, allowed) {
		return errors.NewValidationError(
			fmt.Sprintf("must be one of %s", strings.Join(Strings(allowed), ", ")), field, string(value))
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatList renders every item as given, so the prompt carries exactly what
// the caller sent.
func formatList(values []string) string {
	if len(values) == 0 {
		return "none reported"
	}
	return strings.Join(values, ", ")
}
