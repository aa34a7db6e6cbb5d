package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/sheos-insight-go/internal/config"
	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/metrics"
	"github.com/kapu/sheos-insight-go/internal/schema"
	"github.com/kapu/sheos-insight-go/internal/util"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

// ModelManager sends one prompt to the primary provider and returns its raw
// answer. Failover and the circuit breaker are optional; without them every
// call is a single attempt with no retry.
type ModelManager struct {
	primary        JSONProvider
	failover       JSONProvider
	logger         *zap.Logger
	requestTimeout time.Duration
	circuitBreaker *util.CircuitBreaker
}

type ModelManagerConfig struct {
	GeminiAPIKey       string
	OpenAIAPIKey       string
	DefaultGeminiModel string
	DefaultOpenAIModel string
	Primary            string
	EnableFailover     bool
	RequestTimeout     time.Duration
	CircuitBreaker     bool
}

// ManagerOptions configures a ModelManager built from ready providers.
type ManagerOptions struct {
	RequestTimeout time.Duration
	CircuitBreaker bool
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	defaultGemini := modelOrDefault(cfg.DefaultGeminiModel, constants.ModelDefaults.GeminiModel)
	defaultOpenAI := modelOrDefault(cfg.DefaultOpenAIModel, constants.ModelDefaults.OpenAIModel)

	var geminiProvider *GeminiProvider
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		geminiProvider = NewGeminiProvider(geminiClient, defaultGemini, logger)
	}

	openaiProvider := NewOpenAIProvider(cfg.OpenAIAPIKey, defaultOpenAI, logger)

	var primary, failover JSONProvider
	switch cfg.Primary {
	case config.ProviderOpenAI:
		if openaiProvider == nil {
			return nil, fmt.Errorf("OpenAI selected as primary provider but no API key is set")
		}
		primary = openaiProvider
		if cfg.EnableFailover && geminiProvider != nil {
			failover = geminiProvider
		}
	default:
		if geminiProvider == nil {
			return nil, fmt.Errorf("Gemini selected as primary provider but no API key is set")
		}
		primary = geminiProvider
		if cfg.EnableFailover && openaiProvider != nil {
			failover = openaiProvider
		}
	}

	if failover != nil {
		logger.Info("Provider failover enabled",
			zap.String("primary", primary.Name()),
			zap.String("failover", failover.Name()),
		)
	} else {
		logger.Info("Provider failover disabled", zap.String("primary", primary.Name()))
	}

	return NewModelManagerWithProviders(primary, failover, ManagerOptions{
		RequestTimeout: cfg.RequestTimeout,
		CircuitBreaker: cfg.CircuitBreaker,
	}, logger), nil
}

// NewModelManagerWithProviders builds a manager over existing providers.
// failover may be nil.
func NewModelManagerWithProviders(primary, failover JSONProvider, opts ManagerOptions, logger *zap.Logger) *ModelManager {
	if logger == nil {
		logger = zap.NewNop()
	}

	mm := &ModelManager{
		primary:        primary,
		failover:       failover,
		logger:         logger,
		requestTimeout: opts.RequestTimeout,
	}

	if opts.CircuitBreaker {
		mm.circuitBreaker = util.NewCircuitBreaker(
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			constants.CircuitBreakerConfig.HealthCheckInterval,
			mm.healthCheckPing,
			logger,
		)
	}

	return mm
}

// Generate sends the prompt with the declared schema (nil for free text)
// and returns the provider's raw text. The returned metadata is never nil.
func (mm *ModelManager) Generate(ctx context.Context, prompt string, s *schema.Schema, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	metadata := &GenerateMetadata{}
	if mm.primary != nil {
		metadata.Provider = mm.primary.Name()
	}

	if mm.circuitBreaker != nil && !mm.circuitBreaker.CanExecute() {
		status := mm.circuitBreaker.GetStatus()
		mm.logger.Warn("AI service unavailable (Circuit OPEN)",
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		)
		return "", metadata, errors.NewInsightError(errors.KindCircuitOpen, "model provider circuit is open", map[string]any{
			"failure_count": status.FailureCount,
		})
	}

	if mm.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, mm.requestTimeout)
		defer cancel()
	}

	req := Request{Prompt: prompt, Schema: s}
	if opts != nil {
		req.Options = *opts
	}

	primaryResult, primaryErr := mm.invokeProvider(ctx, mm.primary, req)
	if primaryErr == nil {
		mm.recordSuccess()
		metadata.Model = primaryResult.Model
		return primaryResult.Text, metadata, nil
	}

	if mm.failover == nil {
		mm.recordFailure(primaryErr)
		return "", metadata, primaryErr
	}

	mm.logger.Warn("Primary provider failed, trying failover",
		zap.String("primary", mm.primary.Name()),
		zap.String("failover", mm.failover.Name()),
		zap.Error(primaryErr),
	)

	metadata.Provider = mm.failover.Name()
	metadata.UsedFailover = true

	failoverResult, failoverErr := mm.invokeProvider(ctx, mm.failover, req)
	if failoverErr == nil {
		mm.recordSuccess()
		metadata.Model = failoverResult.Model
		return failoverResult.Text, metadata, nil
	}

	// one failed Generate counts once against the breaker
	recorded := failoverErr
	if !isServiceFailure(recorded) {
		recorded = primaryErr
	}
	mm.recordFailure(recorded)
	return "", metadata, failoverErr
}

func (mm *ModelManager) invokeProvider(ctx context.Context, provider JSONProvider, req Request) (ProviderResult, error) {
	if provider == nil {
		return ProviderResult{}, errors.NewTransportError("", 0, fmt.Errorf("model provider is not configured"))
	}

	result, err := provider.Generate(ctx, req)
	if err != nil {
		classified := classify(provider.Name(), err)
		metrics.ProviderCalls.WithLabelValues(provider.Name(), classified.Kind.String()).Inc()
		return ProviderResult{}, classified
	}

	metrics.ProviderCalls.WithLabelValues(provider.Name(), metrics.OutcomeSuccess).Inc()
	return result, nil
}

func (mm *ModelManager) recordSuccess() {
	if mm.circuitBreaker != nil {
		mm.circuitBreaker.RecordSuccess()
	}
}

func (mm *ModelManager) recordFailure(err error) {
	if mm.circuitBreaker == nil || !isServiceFailure(err) {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if isRateLimitError(err) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}

	mm.circuitBreaker.RecordFailure(timeout)
}

func (mm *ModelManager) healthCheckPing() bool {
	mm.logger.Info("Health Check: Testing AI services...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
	defer cancel()

	primaryOK := mm.primary != nil && mm.primary.Ping(ctx)
	failoverOK := mm.failover != nil && mm.failover.Ping(ctx)
	isHealthy := primaryOK || failoverOK

	mm.logger.Info("Health Check: Result",
		zap.Bool("primary", primaryOK),
		zap.Bool("failover", failoverOK),
		zap.Bool("healthy", isHealthy),
	)

	return isHealthy
}

// CircuitStatus reports the breaker state; ok is false when it is disabled.
func (mm *ModelManager) CircuitStatus() (status util.CircuitBreakerStatus, ok bool) {
	if mm.circuitBreaker == nil {
		return util.CircuitBreakerStatus{}, false
	}
	return mm.circuitBreaker.GetStatus(), true
}

func (mm *ModelManager) ResetCircuit() {
	if mm.circuitBreaker != nil {
		mm.circuitBreaker.Reset()
	}
}

func (mm *ModelManager) PrimaryProvider() string {
	if mm.primary == nil {
		return ""
	}
	return mm.primary.Name()
}
