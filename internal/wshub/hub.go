package wshub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"galmaetgil/internal/broadcast"
	"galmaetgil/internal/domain"
)

// ClientMessage is the JSON structure received from clients.
type ClientMessage struct {
	Type string `json:"t"`
}

// ServerMessage is the JSON structure sent to clients.
type ServerMessage struct {
	Type   string          `json:"t"`
	UserID domain.UserID   `json:"user,omitempty"`
	Data   json.RawMessage `json:"d,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID     string
	UserID domain.UserID
	Conn   *websocket.Conn
	Send   chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub tracks live WebSocket connections. One user may hold several.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		close(c.Send)
		delete(h.clients, clientID)
	}
}

// Len is the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends msg to every client. Non-blocking: drops if a channel is full.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.send(msg, func(*Client) bool { return true })
}

// SendToUser sends msg to every connection held by userID.
func (h *Hub) SendToUser(userID domain.UserID, msg ServerMessage) {
	h.send(msg, func(c *Client) bool { return c.UserID == userID })
}

func (h *Hub) send(msg ServerMessage, match func(*Client) bool) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("encoding websocket message", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if !match(c) {
			continue
		}
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}

// Relay pushes broadcaster messages to connected clients until ctx ends.
// Badge unlocks go to their owner only; everything else goes to everyone.
func (h *Hub) Relay(ctx context.Context, b *broadcast.Broadcaster) {
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			out := ServerMessage{Type: messageType(msg.Event), UserID: msg.UserID, Data: json.RawMessage(msg.Data)}
			if msg.Event == broadcast.EventBadgeUnlocked {
				h.SendToUser(msg.UserID, out)
				continue
			}
			h.Broadcast(out)
		}
	}
}

func messageType(event string) string {
	switch event {
	case broadcast.EventBadgeUnlocked:
		return "badge"
	case broadcast.EventCompletion:
		return "complete"
	case broadcast.EventReview:
		return "review"
	case broadcast.EventComment:
		return "comment"
	}
	return event
}
