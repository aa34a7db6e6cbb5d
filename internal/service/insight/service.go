package insight

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/metrics"
	"github.com/kapu/sheos-insight-go/internal/schema"
	"github.com/kapu/sheos-insight-go/internal/service/ai"
	"github.com/kapu/sheos-insight-go/internal/util"
)

// Generator is the schema-constrained invoker.
type Generator interface {
	Generate(ctx context.Context, prompt string, s *schema.Schema, opts *ai.GenerateOptions) (string, *ai.GenerateMetadata, error)
}

// PromptComposer renders a profile into a prompt.
type PromptComposer interface {
	Compose(profile domain.Profile) string
}

// Service exposes one operation per feature. No operation returns an error:
// failures are reported through Result.Live and Result.Reason.
type Service struct {
	composer  PromptComposer
	generator Generator
	logger    *zap.Logger
}

func NewService(composer PromptComposer, generator Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		composer:  composer,
		generator: generator,
		logger:    logger,
	}
}

func (s *Service) AnalyzeThreat(ctx context.Context, p domain.ThreatProfile) domain.Result[domain.ThreatAnalysis] {
	return runJSON(ctx, s, p, FallbackThreat, normalizeThreat)
}

func (s *Service) AnalyzeSentinel(ctx context.Context, p domain.SentinelSensorData) domain.Result[domain.SentinelAnalysis] {
	return runJSON(ctx, s, p, FallbackSentinel, normalizeSentinel)
}

func (s *Service) AnalyzeHealth(ctx context.Context, p domain.HealthProfile) domain.Result[domain.HealthInsight] {
	return runJSON(ctx, s, p, FallbackHealth, nil)
}

func (s *Service) AnalyzeHealthTwin(ctx context.Context, p domain.HealthTwinProfile) domain.Result[domain.HealthTwinAnalysis] {
	return runJSON(ctx, s, p, FallbackHealthTwin, normalizeHealthTwin)
}

func (s *Service) AnalyzeFinances(ctx context.Context, p domain.TransactionProfile) domain.Result[domain.FinanceInsight] {
	return runJSON(ctx, s, p, FallbackFinanceInsight, normalizeFinanceInsight)
}

func (s *Service) ForecastFinances(ctx context.Context, p domain.FinanceProfile) domain.Result[domain.FinanceForecast] {
	return runJSON(ctx, s, p, FallbackFinanceForecast, normalizeFinanceForecast)
}

func (s *Service) PlanEducation(ctx context.Context, p domain.EducationProfile) domain.Result[domain.EducationRoadmap] {
	return runJSON(ctx, s, p, FallbackEducationRoadmap, nil)
}

func (s *Service) MatchPeers(ctx context.Context, p domain.MatchProfile) domain.Result[[]domain.EmotionalMatch] {
	return runJSON(ctx, s, p, FallbackEmotionalMatches, nil)
}

func (s *Service) CommunityAlerts(ctx context.Context, p domain.CommunityProfile) domain.Result[[]domain.CommunityAlert] {
	return runJSON(ctx, s, p, FallbackCommunityAlerts, normalizeCommunityAlerts)
}

func (s *Service) MentorAdvice(ctx context.Context, p domain.MentorProfile) domain.Result[domain.MentorAdvice] {
	text := runText(ctx, s, p, MentorEmptyFallback, MentorErrorFallback)
	return mapResult(text, func(v string) domain.MentorAdvice { return domain.MentorAdvice{Advice: v} })
}

func (s *Service) Chat(ctx context.Context, p domain.CompanionMessage) domain.Result[domain.CompanionReply] {
	text := runText(ctx, s, p, CompanionEmptyFallback, CompanionErrorFallback)
	return mapResult(text, func(v string) domain.CompanionReply { return domain.CompanionReply{Reply: v} })
}

func runJSON[T any](ctx context.Context, s *Service, profile domain.Profile, fallback func() T, normalize func(T) T) domain.Result[T] {
	feature := profile.Feature()
	start := time.Now()

	responseSchema, _ := schema.For(feature)
	prompt := s.composer.Compose(profile)

	raw, meta, err := s.generator.Generate(ctx, prompt, responseSchema, nil)
	result := Resolve(raw, err, meta, responseSchema, fallback, normalize)

	s.observe(feature, start, result.Live, result.Reason, raw, err)
	return result
}

func runText(ctx context.Context, s *Service, profile domain.Profile, emptyFallback, errorFallback string) domain.Result[string] {
	feature := profile.Feature()
	start := time.Now()

	prompt := s.composer.Compose(profile)

	raw, meta, err := s.generator.Generate(ctx, prompt, nil, nil)
	result := ResolveText(raw, err, meta, emptyFallback, errorFallback)

	s.observe(feature, start, result.Live, result.Reason, raw, err)
	return result
}

func (s *Service) observe(feature domain.Feature, start time.Time, live bool, reason, raw string, err error) {
	elapsed := time.Since(start)
	metrics.InsightDuration.WithLabelValues(feature.String()).Observe(elapsed.Seconds())
	metrics.InsightRequests.WithLabelValues(feature.String(), metrics.Provenance(live), reason).Inc()

	if live {
		s.logger.Debug("Insight resolved",
			zap.String("feature", feature.String()),
			zap.Duration("elapsed", elapsed),
		)
		return
	}

	s.logger.Warn("Insight fell back",
		zap.String("feature", feature.String()),
		zap.String("reason", reason),
		zap.Duration("elapsed", elapsed),
		zap.String("response_preview", util.TruncateString(raw, constants.AIInputLimits.LogPreviewRunes)),
		zap.Error(err),
	)
}

func mapResult[A, B any](r domain.Result[A], fn func(A) B) domain.Result[B] {
	return domain.Result[B]{
		Value:    fn(r.Value),
		Live:     r.Live,
		Provider: r.Provider,
		Model:    r.Model,
		Reason:   r.Reason,
	}
}
