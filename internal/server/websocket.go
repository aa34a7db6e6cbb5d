package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/metrics"
	"github.com/kapu/sheos-insight-go/internal/service/state"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type socketError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// companionSocket answers each text frame {"message","language"} with one
// envelope frame. Frames of one connection are handled in order.
func (s *Server) companionSocket(c *gin.Context) {
	h := s.registry.Lookup(domain.FeatureCompanion.String())
	if h == nil {
		writeError(c, http.StatusNotFound, "companion chat is not available")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	key := state.Key{Session: sessionOf(c), Feature: domain.FeatureCompanion}
	logger := s.logger.With(
		zap.String("request_id", c.GetString(ctxRequestID)),
		zap.String("session", key.Session),
	)

	conn.SetReadLimit(constants.AIInputLimits.MaxBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	logger.Info("Companion socket connected")
	defer logger.Info("Companion socket closed")

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

		if msgType != websocket.TextMessage {
			if !s.writeFrame(conn, socketError{Error: "text frames only"}, logger) {
				return
			}
			continue
		}

		gated := s.begin(ctx, key)
		if !gated.admitted {
			metrics.PendingRejections.WithLabelValues(key.Feature.String()).Inc()
			if !s.writeFrame(conn, socketError{Error: "request already pending"}, logger) {
				return
			}
			continue
		}

		envelope, err := h.Execute(ctx, frame)
		if err != nil {
			if gated.tracked {
				s.abort(key)
			}
			if !s.writeFrame(conn, toSocketError(err), logger) {
				return
			}
			continue
		}

		if ctx.Err() != nil {
			if gated.tracked {
				s.abort(key)
			}
			return
		}

		if gated.tracked {
			s.finish(key, envelope)
		}
		if !s.writeFrame(conn, envelope, logger) {
			return
		}
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, v any, logger *zap.Logger) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(v); err != nil {
		logger.Warn("WebSocket write error", zap.Error(err))
		return false
	}
	return true
}
