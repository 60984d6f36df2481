package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"galmaetgil/internal/broadcast"
	"galmaetgil/internal/domain"
	"galmaetgil/internal/logger"
	"galmaetgil/internal/metrics"
	"galmaetgil/internal/wshub"
)

// handleEvents streams completions and reviews to anyone, and badge unlocks
// to their owner when the request carries that owner's session.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	var viewer domain.UserID
	if u, err := s.Store.User(token(r)); err == nil {
		viewer = u.ID
	}

	msgChan := s.Broadcaster.Subscribe()
	defer s.Broadcaster.Unsubscribe(msgChan)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-msgChan:
			if msg.Event == broadcast.EventBadgeUnlocked && (viewer == 0 || msg.UserID != viewer) {
				continue
			}
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			for _, line := range strings.Split(msg.Data, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}

// handleWebSocket upgrades a signed-in request and relays hub messages to it
// until the peer goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	u, err := s.Store.User(token(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logger.FromContext(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.CloseNow()

	client := &wshub.Client{
		ID:     uuid.NewString(),
		UserID: u.ID,
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}
	s.Hub.Register(client)
	metrics.WebSocketConnections.Inc()
	defer func() {
		s.Hub.Unregister(client.ID)
		metrics.WebSocketConnections.Dec()
	}()

	// Clients only listen; CloseRead cancels ctx once the peer closes.
	ctx := conn.CloseRead(r.Context())
	client.WritePump(ctx)
	conn.Close(websocket.StatusNormalClosure, "")
}
