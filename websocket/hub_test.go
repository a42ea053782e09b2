package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubDeliversToRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 42, Send: make(chan []byte, 8)}
	hub.Register <- client

	hub.Push(42, &Event{Type: "notification", Timestamp: time.Now(), Data: "hello"})

	select {
	case payload := <-client.Send:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.Type != "notification" {
			t.Errorf("expected type notification, got %q", event.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubIgnoresOtherUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 42, Send: make(chan []byte, 8)}
	hub.Register <- client

	hub.Push(7, &Event{Type: "notification", Timestamp: time.Now()})
	hub.Push(42, &Event{Type: "notification", Timestamp: time.Now()})

	// Only the event addressed to user 42 arrives.
	select {
	case <-client.Send:
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
	select {
	case <-client.Send:
		t.Fatal("received an event addressed to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 42, Send: make(chan []byte, 8)}
	hub.Register <- client
	hub.Unregister <- client

	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("expected send channel closed after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}
