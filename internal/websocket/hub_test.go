package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

// TestBroadcastBeforeRegister: события до подключения клиента должны
// отбрасываться, а не ронять процесс
func TestBroadcastBeforeRegister(t *testing.T) {
	h := NewHub()
	go h.Run()

	h.BroadcastEvent("progress", map[string]interface{}{"stage": "generating", "attempt": 1})
	h.BroadcastEvent("report", "payload")

	// даем Run обработать оба события; паника в goroutine убила бы тест
	time.Sleep(50 * time.Millisecond)
}

func testClient(h *Hub) *Client {
	return &Client{
		hub:      h,
		send:     make(chan []byte, 4),
		isActive: true,
	}
}

func TestBroadcastDeliversToClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := testClient(h)
	h.register <- client

	h.BroadcastEvent("report", "payload")

	select {
	case raw := <-client.send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal message: %v", err)
		}
		if msg.Type != "report" {
			t.Errorf("message type = %q, want report", msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("client received no message")
	}
}

// TestStaleUnregisterKeepsNewClient: отключение старого клиента не должно
// помечать неактивным нового
func TestStaleUnregisterKeepsNewClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	oldClient := testClient(h)
	h.register <- oldClient

	newClient := testClient(h)
	h.register <- newClient

	h.unregister <- oldClient

	h.BroadcastEvent("report", "payload")

	select {
	case <-newClient.send:
		// новый клиент продолжает получать события
	case <-time.After(time.Second):
		t.Fatal("new client stopped receiving after stale unregister")
	}
}
