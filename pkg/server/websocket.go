package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vlist/pkg/mount"
	"github.com/vango-dev/vlist/pkg/script"
)

// StepReply answers a step rendered over /ws.
type StepReply struct {
	Seq       int             `json:"seq"`
	Name      string          `json:"name,omitempty"`
	HTML      string          `json:"html"`
	Mutations mount.Mutations `json:"mutations"`
}

// ErrorReply answers a step that could not be parsed or rendered.
type ErrorReply struct {
	Seq   int    `json:"seq"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// handleWebSocket keeps one mount per connection. Every text message is a
// step; it is patched against the previous step and answered with the new
// HTML. The mount is unmounted when the connection ends.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.acquire() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	if !s.track(conn) {
		goingAway(conn)
		return
	}
	defer s.untrack(conn)

	conn.SetReadLimit(s.config.MaxMessageSize)

	ctx := r.Context()
	m := s.newMount()
	logger := s.logger.With("mount", m.ID())
	logger.Info("websocket connected", "remote", r.RemoteAddr)
	defer func() {
		if err := m.Unmount(context.WithoutCancel(ctx)); err != nil {
			logger.Error("unmount failed", "error", err)
		}
		logger.Info("websocket disconnected")
	}()

	for seq := 1; ; seq++ {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			if !s.reply(conn, ErrorReply{Seq: seq, Error: "expected a text message"}) {
				return
			}
			continue
		}

		if !s.reply(conn, s.renderStep(ctx, m, seq, data)) {
			return
		}
	}
}

func (s *Server) renderStep(ctx context.Context, m *mount.Mount, seq int, data []byte) any {
	step, err := script.ParseStep(data)
	if err != nil {
		resp := errorResponse(err, nil)
		return ErrorReply{Seq: seq, Error: resp.Error, Code: resp.Code}
	}
	res, err := m.Render(ctx, step.Build())
	if err != nil {
		resp := errorResponse(err, nil)
		return ErrorReply{Seq: seq, Error: resp.Error, Code: resp.Code}
	}
	return StepReply{
		Seq:       seq,
		Name:      step.Name,
		HTML:      m.HTML(),
		Mutations: res.Mutations,
	}
}

func (s *Server) reply(conn *websocket.Conn, v any) bool {
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := conn.WriteJSON(v); err != nil {
		s.logger.Warn("websocket write failed", "error", err)
		return false
	}
	return true
}
