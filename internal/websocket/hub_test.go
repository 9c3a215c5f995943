package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (h *Hub) hasClients(orderID uuid.UUID) bool {
	return h.clientCount(orderID) > 0
}

func (h *Hub) clientCount(orderID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[orderID])
}

// A client whose buffer fills up gets dropped, and only the unregister path
// closes its channel. Closing twice would panic the hub loop.
func TestHubDropsSlowClientOnce(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	orderID := uuid.New()
	client := &Client{Hub: h, OrderID: orderID, Send: make(chan []byte, 1)}
	h.register <- client
	waitFor(t, func() bool { return h.hasClients(orderID) })

	update := StatusUpdate{OrderId: orderID, OrderNumber: "LF-2026-000001", Stage: "merging"}
	h.Send(update) // fills the one-slot buffer
	h.Send(update) // overflows, drops the client
	waitFor(t, func() bool { return !h.hasClients(orderID) })

	<-client.Send // the buffered update
	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("expected the Send channel to be closed after the drop")
		}
	case <-time.After(time.Second):
		t.Error("Send channel was never closed")
	}
}

func TestHubMultiTabFanout(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	orderID := uuid.New()
	a := &Client{Hub: h, OrderID: orderID, Send: make(chan []byte, 4)}
	b := &Client{Hub: h, OrderID: orderID, Send: make(chan []byte, 4)}
	other := &Client{Hub: h, OrderID: uuid.New(), Send: make(chan []byte, 4)}
	h.register <- a
	h.register <- b
	h.register <- other
	waitFor(t, func() bool { return h.clientCount(orderID) == 2 && h.hasClients(other.OrderID) })

	h.Send(StatusUpdate{OrderId: orderID, Stage: "streaming"})

	for _, c := range []*Client{a, b} {
		select {
		case <-c.Send:
		case <-time.After(time.Second):
			t.Fatal("watcher did not receive the update")
		}
	}
	select {
	case <-other.Send:
		t.Error("client watching a different order received the update")
	default:
	}
}
