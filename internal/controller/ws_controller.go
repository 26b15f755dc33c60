package controller

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// wsHub tracks connected clients for the broadcast relay. Every message is
// forwarded verbatim to every other connected client; nothing is ordered,
// acknowledged or persisted, and a disconnected client simply misses
// whatever was sent while it was away.
type wsHub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

var hub = &wsHub{clients: make(map[string]*websocket.Conn)}

func (h *wsHub) add(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = conn
}

func (h *wsHub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *wsHub) broadcast(from string, messageType int, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		if id == from {
			continue
		}
		// A failed write is the peer's problem; its reader will notice and
		// unregister the connection.
		conn.WriteMessage(messageType, message)
	}
}

// UpgradeWebSocket rejects plain HTTP requests on the websocket route.
func UpgradeWebSocket(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket relays each incoming message to all other clients.
var HandleWebSocket = websocket.New(func(conn *websocket.Conn) {
	id := uuid.NewString()
	hub.add(id, conn)
	defer hub.remove(id)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			break
		}
		hub.broadcast(id, messageType, message)
	}
})
