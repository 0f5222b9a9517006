package services

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"carreto-freight-api/internal/live/models"
	routingmodels "carreto-freight-api/internal/routing/models"
)

// Client represents one websocket subscriber. Telemetry is session
// scoped: a client only receives frames for its own session.
type Client struct {
	SessionID uuid.UUID
	Role      string
	Conn      *websocket.Conn
	Send      chan []byte
}

type sessionMessage struct {
	sessionID uuid.UUID
	payload   []byte
}

// Hub fans route telemetry out to the websocket clients of each session.
type Hub struct {
	clients   map[*Client]bool
	bySession map[uuid.UUID][]*Client

	Register   chan *Client
	Unregister chan *Client
	telemetry  chan sessionMessage

	mu sync.RWMutex
}

// NewHub creates a new telemetry hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		bySession:  make(map[uuid.UUID][]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		telemetry:  make(chan sessionMessage, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case msg := <-h.telemetry:
			h.sendToSession(msg.sessionID, msg.payload)
		}
	}
}

// BroadcastTelemetry queues one telemetry frame for a session's clients.
// Safe to call from the route controller's tick goroutine; drops the
// frame instead of blocking when the hub is saturated.
func (h *Hub) BroadcastTelemetry(sessionID uuid.UUID, status routingmodels.RouteStatus) {
	msg, err := models.NewWSMessage(models.MessageTypeTelemetry, status)
	if err != nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.telemetry <- sessionMessage{sessionID: sessionID, payload: payload}:
	default:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	h.bySession[client.SessionID] = append(h.bySession[client.SessionID], client)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)

	peers := h.bySession[client.SessionID]
	for i, c := range peers {
		if c == client {
			h.bySession[client.SessionID] = append(peers[:i], peers[i+1:]...)
			break
		}
	}
	if len(h.bySession[client.SessionID]) == 0 {
		delete(h.bySession, client.SessionID)
	}
	close(client.Send)
}

func (h *Hub) sendToSession(sessionID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.bySession[sessionID] {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer; drop the frame, the next tick replaces it.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
