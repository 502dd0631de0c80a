package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/pkg/session"
	"nexus-ems-be/pkg/view"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

// ViewRenderer derives the employee page a client should see for its view
// state from the current mirror snapshot.
type ViewRenderer interface {
	RenderView(state view.State) (any, error)
}

type Hub struct {
	// UserID -> connections (multi-device)
	clients map[uuid.UUID][]*Client
	mu      sync.RWMutex

	// Redis connection for cross-instance delivery, nil when running alone
	rdb        *redis.Client
	instanceID string

	renderer ViewRenderer
	logger   logger.ILogger
}

func NewHub(rdb *redis.Client, instanceID string, renderer ViewRenderer, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: instanceID,
		renderer:   renderer,
		logger:     log,
	}
}

// Run consumes cross-instance messages until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		<-ctx.Done()
		return
	}
	h.subscribeToRedis(ctx)
}

// Register adds a client and sends it its initial session route and page.
func (h *Hub) Register(client *Client, user session.User) {
	h.mu.Lock()
	h.clients[client.UserID] = append(h.clients[client.UserID], client)
	h.mu.Unlock()
	h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

	if d, changed := client.gate.Observe(session.Authenticated(user)); changed {
		h.deliver(client, dto.RealtimeTypeSession, d)
	}
	h.pushView(client)
}

// Unregister removes a client and closes its send channel. Safe to call
// more than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i:i], clients[i+1:]...)
			client.markClosed()
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

func (h *Hub) snapshotClients(filter func(uuid.UUID) bool) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*Client
	for uid, clients := range h.clients {
		if filter != nil && !filter(uid) {
			continue
		}
		out = append(out, clients...)
	}
	return out
}

func (h *Hub) ClientCount() int {
	return len(h.snapshotClients(nil))
}

// RefreshViews re-derives and pushes every signed-in client's page. Called
// after each mirror replacement.
func (h *Hub) RefreshViews() {
	for _, c := range h.snapshotClients(nil) {
		h.pushView(c)
	}
}

// UpdateView applies a client's requested view transition and answers with
// the derived page.
func (h *Hub) UpdateView(client *Client, next view.State) {
	client.setView(next)
	h.pushView(client)
}

func (h *Hub) pushView(client *Client) {
	if h.renderer == nil || client.gate.Current().Route != session.RouteShell {
		return
	}
	page, err := h.renderer.RenderView(client.View())
	if err != nil {
		h.logger.Error("Hub", "Failed to render view", map[string]interface{}{"error": err.Error(), "user_id": client.UserID})
		return
	}
	h.deliver(client, dto.RealtimeTypeEmployees, page)
}

// Notify sends a one-shot notification to every connection of a user,
// on this and other instances.
func (h *Hub) Notify(userID uuid.UUID, n dto.NotificationPayload) {
	h.notifyLocal(userID, n)
	h.publish(clusterMessage{Kind: kindNotification, TargetUserID: userID.String(), Notification: &n})
}

// NotifyAll sends a notification to every local connection. Store failures
// are per instance, so this is not fanned out.
func (h *Hub) NotifyAll(n dto.NotificationPayload) {
	for _, c := range h.snapshotClients(nil) {
		h.deliver(c, dto.RealtimeTypeNotification, n)
	}
}

// EndSession signs out the connections opened with sessionID, on this and
// other instances. Each gets its login route and is then disconnected, so a
// later sign-in elsewhere can never reopen it. Connections of the same user
// under other sign-ins are untouched.
func (h *Hub) EndSession(userID uuid.UUID, sessionID string) {
	h.endSessionLocal(userID, sessionID)
	h.publish(clusterMessage{Kind: kindSessionEnd, TargetUserID: userID.String(), SessionID: sessionID})
}

func (h *Hub) notifyLocal(userID uuid.UUID, n dto.NotificationPayload) {
	for _, c := range h.snapshotClients(func(uid uuid.UUID) bool { return uid == userID }) {
		h.deliver(c, dto.RealtimeTypeNotification, n)
	}
}

func (h *Hub) endSessionLocal(userID uuid.UUID, sessionID string) {
	if sessionID == "" {
		return
	}
	for _, c := range h.snapshotClients(func(uid uuid.UUID) bool { return uid == userID }) {
		if c.SessionID != sessionID {
			continue
		}
		if d, changed := c.gate.Observe(session.Unauthenticated()); changed {
			h.deliver(c, dto.RealtimeTypeSession, d)
		}
		// buffered frames are flushed before writePump sends the close frame
		h.Unregister(c)
		h.logger.Info("Hub", "Session ended", map[string]interface{}{"user_id": userID})
	}
}

func (h *Hub) deliver(client *Client, msgType string, payload any) {
	data, err := encode(msgType, payload)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode message", map[string]interface{}{"error": err.Error(), "type": msgType})
		return
	}

	client.sendMu.Lock()
	defer client.sendMu.Unlock()
	if client.closed {
		return
	}
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": client.UserID, "type": msgType})
	}
}

func encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.RealtimeMessage{Type: msgType, Data: raw})
}

const (
	kindNotification = "notification"
	kindSessionEnd   = "session_end"
)

type clusterMessage struct {
	Origin       string                   `json:"origin"`
	Kind         string                   `json:"kind"`
	TargetUserID string                   `json:"target_user_id"`
	Notification *dto.NotificationPayload `json:"notification,omitempty"`
	SessionID    string                   `json:"session_id,omitempty"`
}

func (h *Hub) publish(msg clusterMessage) {
	if h.rdb == nil {
		return
	}
	msg.Origin = h.instanceID
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish to redis", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleClusterMessage([]byte(msg.Payload))
		}
	}
}

// handleClusterMessage applies a message published by another instance.
// Our own publications are skipped because they were delivered locally.
func (h *Hub) handleClusterMessage(raw []byte) {
	var msg clusterMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if msg.Origin == h.instanceID {
		return
	}
	uid, err := uuid.Parse(msg.TargetUserID)
	if err != nil {
		return
	}

	switch msg.Kind {
	case kindNotification:
		if msg.Notification != nil {
			h.notifyLocal(uid, *msg.Notification)
		}
	case kindSessionEnd:
		h.endSessionLocal(uid, msg.SessionID)
	}
}
