package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

const (
	sendBuffer = 64
	writeWait  = 10 * time.Second
)

// Hub tracks open assistant connections per user so server-side events can
// be pushed to every device a user has connected.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	log     *zap.Logger
}

// Client owns the write side of one connection; all writes go through send.
// The connection is only valid until the websocket handler returns, so the
// handler must Unregister and then Wait before it exits.
type Client struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		log:     log,
	}
}

// Register starts the client's writer and adds it to the hub.
func (h *Hub) Register(conn *websocket.Conn, userID string) *Client {
	c := &Client{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	go c.writePump(h.log)
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// Connections returns how many sockets userID has open.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// SendToUser queues msg on every connection of userID. Slow clients drop
// messages instead of blocking the caller.
func (h *Hub) SendToUser(userID string, msg []byte) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if c.enqueue(msg) {
			sent++
		} else {
			h.log.Warn("Dropping message for slow client", zap.String("user_id", userID))
		}
	}
	return sent
}

// HandleActionEvent forwards an assistant.actions payload to its user.
func (h *Hub) HandleActionEvent(data []byte) error {
	var event domain.ActionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode action event: %w", err)
	}

	msg, err := json.Marshal(frame{Type: frameActions, Data: event})
	if err != nil {
		return err
	}
	h.SendToUser(event.UserID, msg)
	return nil
}

func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Wait blocks until the writer has stopped touching the connection.
func (c *Client) Wait() {
	<-c.done
}

func (c *Client) writePump(log *zap.Logger) {
	defer close(c.done)
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Debug("WebSocket write failed", zap.String("user_id", c.userID), zap.Error(err))
			// drain so enqueue never blocks on a dead socket
			for range c.send {
			}
			return
		}
	}
}
