package counter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/metrics"
	"github.com/muurk/cupcraft/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed between messages before an idle connection is dropped
	idleTimeout = 60 * time.Second
)

// handleOrders upgrades to a websocket and answers order envelopes until
// the client disconnects.
func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remoteAddr := r.RemoteAddr
	s.track(remoteAddr, conn)
	defer s.untrack(remoteAddr, conn)

	logging.LogConnection(remoteAddr, "websocket_upgraded")

	limiter := rate.NewLimiter(rate.Limit(s.config.Rate), s.config.Burst)
	ctx := withRemoteAddr(r.Context(), remoteAddr)
	if err := s.serveConn(ctx, conn, remoteAddr, limiter); err != nil {
		logging.Warn("WebSocket connection error",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
	}
}

func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn, remoteAddr string, limiter *rate.Limiter) error {
	conn.SetReadLimit(protocol.MaxMessageSize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			return err
		}

		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
				errors.Is(err, websocket.ErrCloseSent) {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return nil
			}
			return err
		}
		metrics.MessagesTotal.WithLabelValues("received").Inc()
		logging.LogWebSocketMessage(remoteAddr, "received", msgType, data)

		var reply protocol.Envelope
		switch {
		case msgType != websocket.TextMessage:
			reply = protocol.NewError("", "only text messages are supported")
		case !limiter.Allow():
			metrics.RateLimitedTotal.Inc()
			logging.Warn("Rate limit exceeded", zap.String("remote_addr", remoteAddr))
			reply = protocol.NewError(peekOrderID(data), "rate limit exceeded, try again shortly")
		default:
			reply = protocol.HandleMessage(ctx, s, remoteAddr, data)
		}

		if err := s.send(conn, remoteAddr, reply); err != nil {
			return err
		}
	}
}

func (s *Server) send(conn *websocket.Conn, remoteAddr string, reply protocol.Envelope) error {
	out, err := protocol.Encode(reply)
	if err != nil {
		logging.Error("Failed to encode reply", zap.Error(err))
		out, _ = protocol.Encode(protocol.NewError(reply.OrderID, "internal error"))
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		return err
	}
	metrics.MessagesTotal.WithLabelValues("sent").Inc()
	logging.LogWebSocketMessage(remoteAddr, "sent", websocket.TextMessage, out)
	return nil
}

// peekOrderID extracts the order id from a message without validating it,
// so rate-limit replies can still be matched by the client.
func peekOrderID(data []byte) string {
	env, _ := protocol.Decode(data)
	return env.OrderID
}

func (s *Server) track(remoteAddr string, conn *websocket.Conn) {
	s.wg.Add(1)
	s.mu.Lock()
	s.activeConns[remoteAddr] = conn
	s.mu.Unlock()
	metrics.ActiveConnections.Inc()
}

func (s *Server) untrack(remoteAddr string, conn *websocket.Conn) {
	_ = conn.Close()
	s.mu.Lock()
	delete(s.activeConns, remoteAddr)
	s.mu.Unlock()
	metrics.ActiveConnections.Dec()
	logging.LogConnection(remoteAddr, "websocket_closed")
	s.wg.Done()
}
