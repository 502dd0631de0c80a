package websocket

import (
	"nexus-ems-be/pkg/session"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs runs one connection until the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID, sessionID string, user session.User) {
	client := NewClient(hub, c, userID, sessionID)
	hub.Register(client, user)

	go client.writePump()
	client.readPump()
}
