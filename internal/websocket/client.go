package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/pkg/session"
	"nexus-ems-be/pkg/view"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is a middleman between the websocket connection and the hub. It
// owns the connection's view state and session gate.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	UserID uuid.UUID

	// SessionID is the sign-in whose token opened this connection.
	SessionID string

	// Buffered channel of outbound messages.
	Send chan []byte

	sendMu sync.Mutex
	closed bool

	viewMu sync.Mutex
	view   view.State

	gate *session.Gate
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, sessionID string) *Client {
	return &Client{
		Hub:       hub,
		Conn:      conn,
		UserID:    userID,
		SessionID: sessionID,
		Send:      make(chan []byte, sendBuffer),
		view:      view.NewState(),
		gate:      session.NewGate(),
	}
}

func (c *Client) View() view.State {
	c.viewMu.Lock()
	defer c.viewMu.Unlock()
	return c.view
}

func (c *Client) setView(next view.State) {
	c.viewMu.Lock()
	c.view = c.view.Apply(next)
	c.viewMu.Unlock()
}

func (c *Client) Route() session.Route {
	return c.gate.Current().Route
}

// handleInbound dispatches a frame sent by the browser.
func (c *Client) handleInbound(raw []byte) {
	var msg dto.RealtimeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.Hub.logger.Warn("Client", "Malformed inbound frame", map[string]interface{}{"user_id": c.UserID})
		return
	}

	switch msg.Type {
	case dto.RealtimeTypeView:
		var next view.State
		if err := json.Unmarshal(msg.Data, &next); err != nil {
			c.Hub.logger.Warn("Client", "Malformed view state", map[string]interface{}{"user_id": c.UserID})
			return
		}
		c.Hub.UpdateView(c, next)
	default:
		c.Hub.logger.Debug("Client", "Ignoring inbound frame", map[string]interface{}{"type": msg.Type})
	}
}

// markClosed stops further deliveries before the hub closes Send.
func (c *Client) markClosed() {
	c.sendMu.Lock()
	c.closed = true
	c.sendMu.Unlock()
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.markClosed()
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"user_id": c.UserID, "error": err.Error()})
			}
			break
		}
		c.handleInbound(raw)
	}
}

// writePump pumps messages from the hub to the websocket connection. Each
// frame carries exactly one JSON message.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
