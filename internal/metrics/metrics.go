package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ProvenanceLive     = "live"
	ProvenanceFallback = "fallback"

	OutcomeSuccess = "success"
)

var (
	InsightRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheos_insight_requests_total",
			Help: "Total number of resolved insight requests by provenance",
		},
		[]string{"feature", "provenance", "reason"},
	)

	InsightDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sheos_insight_duration_seconds",
			Help:    "Duration of insight requests from prompt to resolved result in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"feature"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheos_provider_calls_total",
			Help: "Total number of model provider calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	PendingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheos_pending_rejections_total",
			Help: "Insight triggers ignored because the same screen was still loading",
		},
		[]string{"feature"},
	)
)

func Provenance(live bool) string {
	if live {
		return ProvenanceLive
	}
	return ProvenanceFallback
}
