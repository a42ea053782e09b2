package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is a message pushed to a connected user.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub manages live notification connections. A user may hold several
// connections (multiple tabs); each one gets every event addressed to them.
type Hub struct {
	clients map[uint]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	events     chan targetedEvent

	mu sync.RWMutex
}

type targetedEvent struct {
	userID uint
	event  *Event
}

// NewHub creates a new notification hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		events:     make(chan targetedEvent, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			h.mu.Unlock()
			log.Printf("🔌 Notification client registered: user=%d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.UserID]; ok {
				if conns[client] {
					delete(conns, client)
					close(client.Send)
				}
				if len(conns) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
			log.Printf("🔌 Notification client unregistered: user=%d", client.UserID)

		case te := <-h.events:
			h.deliver(te.userID, te.event)
		}
	}
}

// Push queues an event for a user. Never blocks: when the hub is saturated
// the event is dropped, the REST listing remains the source of truth.
func (h *Hub) Push(userID uint, event *Event) {
	select {
	case h.events <- targetedEvent{userID: userID, event: event}:
	default:
		log.Printf("⚠️ Notification event channel full, dropping push for user %d", userID)
	}
}

func (h *Hub) deliver(userID uint, event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := h.clients[userID]
	if len(conns) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to marshal notification event: %v", err)
		return
	}

	for client := range conns {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer, skip rather than block the hub
			log.Printf("⚠️ Send buffer full for user %d, dropping event", userID)
		}
	}
}
