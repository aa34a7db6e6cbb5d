package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/app"
	"github.com/kapu/sheos-insight-go/internal/config"
	"github.com/kapu/sheos-insight-go/internal/util"
)

const buildTimeout = 30 * time.Second

// loader builds the runtime container. Commands that never call the model
// (features) do not load config at all.
type loader func(ctx context.Context, logFile string) (*app.Container, error)

func loadContainer(ctx context.Context, logFile string) (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if logFile == "" {
		logFile = cfg.Logging.File
	}
	logger, err := util.NewLogger(cfg.Logging.Level, logFile, cfg.Logging.JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	buildCtx, cancel := context.WithTimeout(ctx, buildTimeout)
	defer cancel()

	container, err := app.Build(buildCtx, cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}
	return container, nil
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(loadContainer)
}

func newRootCmdWith(load loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "sheos",
		Short:         "SheOS AI insight service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(load),
		newRunCmd(load),
		newFeaturesCmd(),
	)

	return root
}
