package models

import (
	"encoding/json"
	"time"
)

// Message types pushed over the telemetry socket
const (
	MessageTypeConnected = "connected"
	MessageTypeTelemetry = "telemetry"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
)

// WSMessage is the envelope for every frame on the socket.
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewWSMessage wraps a payload in the envelope.
func NewWSMessage(msgType string, data any) (*WSMessage, error) {
	msg := &WSMessage{Type: msgType, Timestamp: time.Now()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return msg, nil
}

// NewConnectedMessage confirms a successful subscription.
func NewConnectedMessage(sessionID, role string) (*WSMessage, error) {
	return NewWSMessage(MessageTypeConnected, map[string]string{
		"session_id": sessionID,
		"role":       role,
	})
}
