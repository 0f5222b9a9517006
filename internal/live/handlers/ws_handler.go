package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"carreto-freight-api/internal/live/models"
	"carreto-freight-api/internal/live/services"
	"carreto-freight-api/pkg/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: validate origin against the CORS allow-list
		return true
	},
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// WSHandler upgrades telemetry feed connections
type WSHandler struct {
	hub *services.Hub
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(hub *services.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// HandleConnection subscribes the caller to its session's telemetry.
// Frames arrive every simulated tick while the route is active.
func (h *WSHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &services.Client{
		SessionID: claims.SessionID,
		Role:      claims.Role,
		Conn:      conn,
		Send:      make(chan []byte, 256),
	}
	h.hub.Register <- client

	if connected, err := models.NewConnectedMessage(claims.SessionID.String(), claims.Role); err == nil {
		if payload, err := json.Marshal(connected); err == nil {
			client.Send <- payload
		}
	}

	go h.writePump(client)
	go h.readPump(client)
}

// readPump drains the connection; the only inbound message honored is a
// ping request.
func (h *WSHandler) readPump(client *services.Client) {
	defer func() {
		h.hub.Unregister <- client
		_ = client.Conn.Close()
	}()

	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}

		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == models.MessageTypePing {
			if pong, err := models.NewWSMessage(models.MessageTypePong, nil); err == nil {
				if payload, err := json.Marshal(pong); err == nil {
					client.Send <- payload
				}
			}
		}
	}
}

// writePump pushes hub frames and keepalive pings to the peer.
func (h *WSHandler) writePump(client *services.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if err := client.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			if err := client.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
