package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"launchforge-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatusUpdate is pushed to clients watching an order during generation.
type StatusUpdate struct {
	OrderId     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Stage       string    `json:"stage"` // resolving, merging, streaming, completed, failed
	Detail      string    `json:"detail,omitempty"`
}

// Hub fans generation status updates out to websocket clients. Clients
// subscribe per order id (the checkout page watches its own order). Redis
// pub/sub carries updates across instances when configured.
type Hub struct {
	// Registered clients map: OrderID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

const clusterChannel = "generation_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OrderID] = append(h.clients[client.OrderID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"order_id": client.OrderID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OrderID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.OrderID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OrderID]) == 0 {
					delete(h.clients, client.OrderID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"order_id": client.OrderID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a status update to every client watching the order, locally and
// via Redis to clients connected to other instances.
func (h *Hub) Send(update StatusUpdate) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "generation_status",
		"data": update,
	})

	// With Redis every instance (including this one) delivers via the
	// subscriber, so we only publish. Without Redis deliver directly.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_order_id": update.OrderId.String(),
			"message":         json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
		return
	}

	h.mu.RLock()
	clients, found := h.clients[update.OrderId]
	h.mu.RUnlock()
	if !found {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Unregister closes the channel; closing here too would double-close.
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"order_id": update.OrderId})
			h.unregister <- client
		}
	}
}

// subscribeToRedis relays updates published by other instances to the order
// watchers connected here. Every instance subscribes to the same channel and
// filters by local presence.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetOrderID string          `json:"target_order_id"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		oid, err := uuid.Parse(payload.TargetOrderID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, found := h.clients[oid]
		h.mu.RUnlock()
		if !found {
			continue
		}
		for _, client := range clients {
			select {
			case client.Send <- payload.Message:
			default:
				h.unregister <- client
			}
		}
	}
}
