// websocket/hub.go
package websocket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to connected admin dashboards
const (
	EventTypeOrderCreated = "order_created"
	EventTypeOrderUpdated = "order_updated"
)

// Event is a message sent over WebSocket to the admin order feed
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected admin dashboard
type Client struct {
	Conn *websocket.Conn
	send chan Event
}

// Hub maintains the set of connected admin clients and broadcasts order
// events to all of them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 16),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					// Slow consumer; drop the event for this client
					log.Printf("websocket: dropping event for slow client")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for every connected admin client
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("websocket: broadcast buffer full, dropping %s event", event.Type)
	}
}
