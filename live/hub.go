package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
)

// writeTimeout bounds a single write to one client.
const writeTimeout = 3 * time.Second

type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	seq     atomic.Uint64
	logger  *slog.Logger
}

// NewHub returns an empty hub logging to logger (nil discards).
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{clients: make(map[*websocket.Conn]struct{}), logger: logger}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("live: client added", "clients", n)
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("live: client removed", "clients", n)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes message to every client, dropping those that fail.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	for conn := range h.clients {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			h.logger.Debug("live: dropping client", "err", err)
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
	h.mu.Unlock()
}

// send stamps m with the next sequence number and broadcasts it.
func (h *Hub) send(m Message) {
	m.Sequence = h.seq.Add(1)
	b, err := json.Marshal(m)
	if err != nil {
		h.logger.Error("live: encoding message", "type", m.Type, "err", err)
		return
	}
	h.Broadcast(b)
}
