package insight

import (
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/util"
)

// Live answers are clamped into their declared ranges after parsing. Enum
// values need no handling here; the schema already rejects unknown ones.

func normalizeThreat(v domain.ThreatAnalysis) domain.ThreatAnalysis {
	v.DangerLevel = util.ClampInt(v.DangerLevel, 1, 10)
	return v
}

func normalizeSentinel(v domain.SentinelAnalysis) domain.SentinelAnalysis {
	v.ThreatScore = clampPercent(v.ThreatScore)
	return v
}

func normalizeHealthTwin(v domain.HealthTwinAnalysis) domain.HealthTwinAnalysis {
	v.BodySyncScore = clampPercent(v.BodySyncScore)
	for i := range v.PredictedRisks {
		v.PredictedRisks[i].Probability = clampPercent(v.PredictedRisks[i].Probability)
	}
	return v
}

func normalizeFinanceInsight(v domain.FinanceInsight) domain.FinanceInsight {
	v.FinancialAbuseRisk = util.ClampFloat(v.FinancialAbuseRisk, 0, 100)
	return v
}

func normalizeFinanceForecast(v domain.FinanceForecast) domain.FinanceForecast {
	v.StabilityScore = clampPercent(v.StabilityScore)
	return v
}

func normalizeCommunityAlerts(v []domain.CommunityAlert) []domain.CommunityAlert {
	for i := range v {
		v[i].VerifiedCount = util.Max(v[i].VerifiedCount, 0)
	}
	return v
}

func clampPercent(v int) int {
	return util.ClampInt(v, 0, 100)
}
