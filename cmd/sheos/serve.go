package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
)

func newServeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), load)
		},
	}
}

func runServe(ctx context.Context, load loader) error {
	if ctx == nil {
		ctx = context.Background()
	}

	container, err := load(ctx, "")
	if err != nil {
		return err
	}
	defer container.Close()

	logger := container.Logger
	defer logger.Sync()

	srv, err := container.NewServer()
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("SheOS insight server started, waiting for signals...",
		zap.String("addr", container.Config.Server.Addr),
	)

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerConfig.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}
