package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/bep/debounce"
	"github.com/gorilla/websocket"
	"github.com/jsphweid/ctransposer/constants"
	"github.com/jsphweid/ctransposer/logging"
	"github.com/jsphweid/ctransposer/model"
)

// Tests shorten this.
var liveDebounce = constants.LiveDebounce

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// cors already decided who may call us
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveSession transposes the latest request received on a websocket once
// no new request has arrived for liveDebounce.
type liveSession struct {
	ctx       context.Context
	conn      *websocket.Conn
	debounced func(func())

	mu     sync.Mutex // guards latest, closed and all writes to conn
	latest model.TransposeRequest
	closed bool
}

func HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s := &liveSession{
		ctx:       r.Context(),
		conn:      conn,
		debounced: debounce.New(liveDebounce),
	}
	s.run()
	s.close()
}

func (s *liveSession) run() {
	logger := logging.LoggerFromContext(s.ctx)
	logging.InfoContext(s.ctx, "live session started", "remote_addr", s.conn.RemoteAddr().String())
	conn := s.conn
	conn.SetReadLimit(constants.MaxRequestBytes)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("live session ended", "error", err)
			}
			return
		}

		var req model.TransposeRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.write(model.ErrorResponse{Error: "Could not read message: " + err.Error()})
			continue
		}

		s.mu.Lock()
		s.latest = req
		s.mu.Unlock()
		s.debounced(s.flush)
	}
}

// close drops any pending flush. A flush already running finishes its
// transpose but writes nothing.
func (s *liveSession) close() {
	s.debounced(func() {})
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *liveSession) flush() {
	s.mu.Lock()
	req, closed := s.latest, s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	res, err := runTranspose(s.ctx, reportStore, req)
	if err != nil {
		logging.LoggerFromContext(s.ctx).Error("could not save report", "error", err)
		s.write(model.ErrorResponse{Error: "could not save report"})
		return
	}
	s.write(res)
}

func (s *liveSession) write(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err := s.conn.WriteJSON(v); err != nil {
		logging.LoggerFromContext(s.ctx).Debug("could not write to live session", "error", err)
	}
}
