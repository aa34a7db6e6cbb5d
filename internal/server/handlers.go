package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/metrics"
	"github.com/kapu/sheos-insight-go/internal/service/insight"
	"github.com/kapu/sheos-insight-go/internal/service/state"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

type featureInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FreeText    bool   `json:"freeText"`
}

func (s *Server) listFeatures(c *gin.Context) {
	handlers := s.registry.Handlers()
	out := make([]featureInfo, 0, len(handlers))
	for _, h := range handlers {
		out = append(out, featureInfo{
			Name:        h.Feature().String(),
			Description: h.Description(),
			FreeText:    h.Feature().FreeText(),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) runInsight(c *gin.Context) {
	h := s.registry.Lookup(c.Param("feature"))
	if h == nil {
		writeError(c, http.StatusNotFound, insight.ErrUnknownFeature.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, constants.AIInputLimits.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(c, http.StatusBadRequest, "failed to read body")
		return
	}

	ctx := c.Request.Context()
	key := state.Key{Session: sessionOf(c), Feature: h.Feature()}

	gated := s.begin(ctx, key)
	if !gated.admitted {
		metrics.PendingRejections.WithLabelValues(key.Feature.String()).Inc()
		writeError(c, http.StatusConflict, "request already pending")
		return
	}

	envelope, err := h.Execute(ctx, body)
	if err != nil {
		if gated.tracked {
			s.abort(key)
		}
		writeInputError(c, err)
		return
	}

	if ctx.Err() != nil {
		// the caller left; its screen keeps the result it already shows
		if gated.tracked {
			s.abort(key)
		}
		return
	}

	if gated.tracked {
		s.finish(key, envelope)
	}
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) lastInsight(c *gin.Context) {
	h := s.registry.Lookup(c.Param("feature"))
	if h == nil {
		writeError(c, http.StatusNotFound, insight.ErrUnknownFeature.Error())
		return
	}

	key := state.Key{Session: sessionOf(c), Feature: h.Feature()}
	var envelope domain.Envelope
	found, err := s.store.Last(c.Request.Context(), key, &envelope)
	if err != nil {
		s.logger.Warn("State read failed", zap.String("key", key.String()), zap.Error(err))
		writeError(c, http.StatusServiceUnavailable, "state unavailable")
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "no result displayed yet")
		return
	}
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) runBatch(c *gin.Context) {
	var items []insight.BatchItem
	if err := c.ShouldBindJSON(&items); err != nil {
		writeError(c, http.StatusBadRequest, "invalid batch body")
		return
	}

	results, err := s.batch.Run(c.Request.Context(), items)
	if err != nil {
		writeInputError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

type gate struct {
	admitted bool
	tracked  bool
}

// begin consults the loading gate. A failing state backend admits the
// request untracked.
func (s *Server) begin(ctx context.Context, key state.Key) gate {
	ok, err := s.store.TryBegin(ctx, key)
	if err != nil {
		s.logger.Warn("State gate unavailable, running ungated", zap.String("key", key.String()), zap.Error(err))
		return gate{admitted: true}
	}
	return gate{admitted: ok, tracked: ok}
}

// finish and abort use a fresh context so a client disconnect does not leave
// the screen marked as loading.
func (s *Server) finish(key state.Key, envelope domain.Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.StateConfig.WriteTimeout)
	defer cancel()
	if err := s.store.Finish(ctx, key, envelope); err != nil {
		s.logger.Warn("State finish failed", zap.String("key", key.String()), zap.Error(err))
	}
}

func (s *Server) abort(key state.Key) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.StateConfig.WriteTimeout)
	defer cancel()
	if err := s.store.Abort(ctx, key); err != nil {
		s.logger.Warn("State abort failed", zap.String("key", key.String()), zap.Error(err))
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"request_id": c.GetString(ctxRequestID),
	})
}

func writeInputError(c *gin.Context, err error) {
	var validationErr *errors.ValidationError
	switch {
	case stderrors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":      validationErr.Error(),
			"field":      validationErr.Field,
			"request_id": c.GetString(ctxRequestID),
		})
	case stderrors.Is(err, insight.ErrUnknownFeature):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func toSocketError(err error) socketError {
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return socketError{Error: validationErr.Error(), Field: validationErr.Field}
	}
	return socketError{Error: "internal error"}
}
