// Package stream fans valuation receipts out to websocket subscribers.
package stream

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"assetgraph/internal/domain"
	"assetgraph/internal/metrics"
)

// Message is one frame on the wire: the nodes an update just recomputed.
type Message struct {
	Type    string             `json:"type"`
	Updates []domain.NodeValue `json:"updates"`
}

// Hub tracks connected clients and broadcasts receipts to all of them. Dead
// connections are dropped on the first failed write.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	logger  *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		clients: map[*websocket.Conn]bool{},
		logger:  logger,
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	metrics.StreamClientsGauge.Set(float64(len(h.clients)))
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
	metrics.StreamClientsGauge.Set(float64(len(h.clients)))
}

// Broadcast writes the receipt to every client. Safe to call with an empty
// receipt; nothing is sent.
func (h *Hub) Broadcast(updates []domain.NodeValue) {
	if len(updates) == 0 {
		return
	}
	msg := Message{
		Type:    "valuation",
		Updates: updates,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warnf("dropping stream client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
	metrics.StreamClientsGauge.Set(float64(len(h.clients)))
}

func (h *Hub) NumClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
