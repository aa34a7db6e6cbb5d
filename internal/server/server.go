// Package server exposes insight requests over HTTP and a companion chat
// WebSocket.
package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/service/insight"
	"github.com/kapu/sheos-insight-go/internal/service/state"
)

type Server struct {
	registry   *insight.Registry
	batch      *insight.BatchRunner
	store      state.Store
	logger     *zap.Logger
	router     *gin.Engine
	httpServer *http.Server
}

func New(addr string, registry *insight.Registry, batch *insight.BatchRunner, store state.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		registry: registry,
		batch:    batch,
		store:    store,
		logger:   logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	v1.GET("/features", s.listFeatures)
	v1.POST("/insights/batch", s.runBatch)
	v1.POST("/insights/:feature", s.runInsight)
	v1.GET("/insights/:feature/last", s.lastInsight)
	v1.GET("/ws/companion", s.companionSocket)

	s.router = router
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: constants.ServerConfig.ReadHeaderTimeout,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
