package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/word-hunt-solver/game/service"
)

func newTestClient(hub *Hub, room string) *Client {
	return &Client{
		hub:  hub,
		room: room,
		send: make(chan []byte, 256),
	}
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return message
	case <-time.After(100 * time.Millisecond):
		t.Fatal("No message received within timeout")
	}
	return Message{}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.rooms == nil {
		t.Error("Hub rooms map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels must be initialized")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "table-1")

	hub.registerClient(client)

	if !hub.rooms["table-1"][client] {
		t.Error("Client was not registered in room")
	}
	if hub.ClientCount("table-1") != 1 {
		t.Errorf("Expected 1 client in room, got %d", hub.ClientCount("table-1"))
	}
	if hub.RoomCount() != 1 {
		t.Errorf("Expected 1 room, got %d", hub.RoomCount())
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "table-1")

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.rooms["table-1"]; exists {
		t.Error("Room should have been cleaned up after last client left")
	}
	if _, ok := <-client.send; ok {
		t.Error("Send channel should be closed")
	}

	// Unregistering twice is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInRoom(t *testing.T) {
	hub := NewHub()
	client1 := newTestClient(hub, "shared")
	client2 := newTestClient(hub, "shared")

	hub.registerClient(client1)
	hub.registerClient(client2)
	if hub.ClientCount("shared") != 2 {
		t.Errorf("Expected 2 clients in room, got %d", hub.ClientCount("shared"))
	}

	hub.unregisterClient(client1)
	if hub.ClientCount("shared") != 1 {
		t.Errorf("Expected 1 client remaining in room, got %d", hub.ClientCount("shared"))
	}
	if !hub.rooms["shared"][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub()
	inRoom := newTestClient(hub, "table-1")
	otherRoom := newTestClient(hub, "table-2")
	hub.registerClient(inRoom)
	hub.registerClient(otherRoom)

	result := &service.SolveResult{
		Letters: "abcdefghijklmnop",
		Words:   []string{"abc", "fab"},
		Count:   2,
	}
	hub.broadcastMessage(&Message{Room: "table-1", Event: EventSolveResult, Data: result})

	message := receive(t, inRoom)
	if message.Room != "table-1" {
		t.Errorf("Expected room 'table-1', got %s", message.Room)
	}
	if message.Event != EventSolveResult {
		t.Errorf("Expected event %q, got %s", EventSolveResult, message.Event)
	}

	data, ok := message.Data.(map[string]any)
	if !ok {
		t.Fatalf("Expected object payload, got %T", message.Data)
	}
	if data["count"] != float64(2) {
		t.Errorf("Expected count 2, got %v", data["count"])
	}

	select {
	case <-otherRoom.send:
		t.Error("Client in another room should not receive the event")
	default:
	}
}

func TestHubBroadcastToEveryone(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub, "a")
	b := newTestClient(hub, "b")
	hub.registerClient(a)
	hub.registerClient(b)

	hub.broadcastMessage(&Message{Event: EventDictionaryUpdated, Data: "default"})

	if receive(t, a).Event != EventDictionaryUpdated || receive(t, b).Event != EventDictionaryUpdated {
		t.Error("Expected every client to receive a room-less event")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{hub: hub, room: "slow", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{Room: "slow", Event: EventSolveResult})

	if hub.ClientCount("slow") != 0 {
		t.Error("Client with a full send buffer should be dropped")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()

	hub.BroadcastEvent("event-test", "custom-event", "test-data")

	select {
	case message := <-hub.broadcast:
		if message.Room != "event-test" {
			t.Errorf("Expected room 'event-test', got %s", message.Room)
		}
		if message.Event != "custom-event" {
			t.Errorf("Expected event 'custom-event', got %s", message.Event)
		}
		if message.Data != "test-data" {
			t.Errorf("Expected data 'test-data', got %v", message.Data)
		}
		if message.Timestamp.IsZero() {
			t.Error("Expected timestamp to be set")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No broadcast message queued")
	}
}

func TestHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		// Nobody runs the hub; the queue fills and further events are dropped
		for i := 0; i < broadcastBuffer*2; i++ {
			hub.BroadcastEvent("room", EventSolveResult, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BroadcastEvent blocked")
	}
}

func startTestServer(t *testing.T, hub *Hub) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("room"))
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestWebSocketUpgrade(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	conn, _, err := websocket.DefaultDialer.Dial(startTestServer(t, hub)+"?room=ws-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 1 })

	conn.Close()

	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 0 })
}

func TestWebSocketSolveResultReceive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	conn, _, err := websocket.DefaultDialer.Dial(startTestServer(t, hub)+"?room=msg-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.ClientCount("msg-test") == 1 })

	hub.BroadcastSolveResult("msg-test", &service.SolveResult{
		Letters: "abcdefghijklmnop",
		Words:   []string{"knife"},
		Count:   1,
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message struct {
		Room  string              `json:"room"`
		Event string              `json:"event"`
		Data  service.SolveResult `json:"data"`
	}
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	if message.Room != "msg-test" || message.Event != EventSolveResult {
		t.Errorf("Unexpected envelope: room %q event %q", message.Room, message.Event)
	}
	if message.Data.Count != 1 || message.Data.Words[0] != "knife" {
		t.Errorf("Solve result not correctly received: %+v", message.Data)
	}
}

func TestHubRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := newTestClient(hub, "room")
	hub.register <- client
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if hub.RoomCount() != 0 {
		t.Error("Expected all clients closed on shutdown")
	}
}
