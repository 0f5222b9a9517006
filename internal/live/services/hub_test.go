package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"carreto-freight-api/internal/live/models"
	routingmodels "carreto-freight-api/internal/routing/models"
)

func TestHubRoutesTelemetryBySession(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sessA := uuid.New()
	sessB := uuid.New()
	clientA := &Client{SessionID: sessA, Role: "driver", Send: make(chan []byte, 8)}
	clientB := &Client{SessionID: sessB, Role: "driver", Send: make(chan []byte, 8)}
	hub.Register <- clientA
	hub.Register <- clientB

	status := routingmodels.RouteStatus{Active: true, Speed: 62, ETA: "20 min", NextStop: "Rua A"}
	hub.BroadcastTelemetry(sessA, status)

	select {
	case payload := <-clientA.Send:
		var msg models.WSMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("invalid frame: %v", err)
		}
		if msg.Type != models.MessageTypeTelemetry {
			t.Fatalf("type = %s", msg.Type)
		}
		var got routingmodels.RouteStatus
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("invalid telemetry payload: %v", err)
		}
		if got.Speed != 62 || got.NextStop != "Rua A" {
			t.Fatalf("unexpected telemetry: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("session A never received its frame")
	}

	select {
	case <-clientB.Send:
		t.Fatal("session B received a frame meant for session A")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{SessionID: uuid.New(), Send: make(chan []byte, 1)}
	hub.Register <- client
	hub.Unregister <- client

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}
}
