package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/config"
	"github.com/kapu/sheos-insight-go/internal/prompt"
	"github.com/kapu/sheos-insight-go/internal/server"
	"github.com/kapu/sheos-insight-go/internal/service/ai"
	"github.com/kapu/sheos-insight-go/internal/service/insight"
	"github.com/kapu/sheos-insight-go/internal/service/state"
)

// Container bundles the assembled insight stack for the CLI and the server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Models   *ai.ModelManager
	Service  *insight.Service
	Registry *insight.Registry
	Batch    *insight.BatchRunner
	Store    state.Store

	closers []func()
}

// NewServer wires the HTTP server over the container's registry and state.
func (c *Container) NewServer() (*server.Server, error) {
	if c == nil || c.Registry == nil {
		return nil, fmt.Errorf("insight registry not initialized")
	}
	return server.New(c.Config.Server.Addr, c.Registry, c.Batch, c.Store, c.Logger), nil
}

// Close releases resources in reverse construction order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles the model providers, the insight service and the state
// backend. Redis is used for state when configured, memory otherwise.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// State
	var store state.Store
	if cfg.Redis.Enabled() {
		redisStore, redisErr := state.NewRedisStore(state.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.State.PendingTTL, logger)
		if redisErr != nil {
			return nil, fmt.Errorf("failed to create redis state store: %w", redisErr)
		}
		store = redisStore
	} else {
		store = state.NewMemoryStore(cfg.State.PendingTTL)
		logger.Info("Using in-memory screen state")
	}
	closers = append(closers, func() {
		_ = store.Close()
	})

	// AI stack
	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:       cfg.Gemini.APIKey,
		OpenAIAPIKey:       cfg.OpenAI.APIKey,
		DefaultGeminiModel: cfg.Gemini.Model,
		DefaultOpenAIModel: cfg.OpenAI.Model,
		Primary:            cfg.AI.Provider,
		EnableFailover:     cfg.OpenAI.EnableFallback,
		RequestTimeout:     cfg.AI.RequestTimeout,
		CircuitBreaker:     cfg.AI.CircuitBreaker,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	composer := prompt.NewComposer(prompt.DefaultPromptBuilder(), logger)
	svc := insight.NewService(composer, modelManager, logger)
	registry := insight.NewServiceRegistry(svc)
	batch := insight.NewBatchRunner(registry, cfg.Batch.Concurrency, logger)

	logger.Info("Insight stack ready",
		zap.String("primary_provider", modelManager.PrimaryProvider()),
		zap.Int("features", registry.Count()),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Models:   modelManager,
		Service:  svc,
		Registry: registry,
		Batch:    batch,
		Store:    store,
		closers:  closers,
	}, nil
}
