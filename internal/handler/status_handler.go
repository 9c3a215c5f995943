// FILE: internal/handler/status_handler.go
package handler

import (
	"launchforge-be/internal/pkg/logger"
	internalWS "launchforge-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// StatusHandler upgrades checkout-page connections onto the generation
// status hub. Knowing an order's UUID is the only credential; the id is
// random and the channel only carries progress stages.
type StatusHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewStatusHandler(hub *internalWS.Hub, log logger.ILogger) *StatusHandler {
	return &StatusHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *StatusHandler) ServeWs(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StatusHandler", "Starting WebSocket session", map[string]interface{}{"order_id": orderID})
			internalWS.ServeWs(h.hub, conn, orderID)
			h.logger.Info("StatusHandler", "WebSocket session ended", map[string]interface{}{"order_id": orderID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket route.
func (h *StatusHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/orders/:id", h.ServeWs)
}
