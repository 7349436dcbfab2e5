package server

import (
	"context"
	"log"
	"sync"

	"activity-telemetry-lab/internal/observability"
)

// Hub fans batch notifications out to connected websocket clients.
// Clients that cannot keep up are dropped so the loop never blocks.
type Hub struct {
	logger  *log.Logger
	metrics *observability.Metrics

	clients    map[*Client]struct{}
	broadcast  chan any
	register   chan *Client
	unregister chan *Client

	mu    sync.RWMutex
	count int
}

// NewHub creates a hub ready to Run.
func NewHub(logger *log.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		logger:  logger,
		metrics: metrics,
		clients: make(map[*Client]struct{}),
		// Buffered so a burst of uploads does not stall the handlers.
		broadcast:  make(chan any, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub loop. It owns the clients map; registration,
// unregistration and broadcast all funnel through here.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.setCount(0)
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.setCount(len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.setCount(len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client too slow, disconnect to keep the loop moving.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.setCount(len(h.clients))
		}
	}
}

// Broadcast queues a message for all connected clients.
func (h *Hub) Broadcast(message any) {
	select {
	case h.broadcast <- message:
	default:
		if h.logger != nil {
			h.logger.Printf("broadcast queue full, dropping message")
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.WSClientsConnected.Set(float64(n))
	}
}
