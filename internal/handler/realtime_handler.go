package handler

import (
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	internalWS "nexus-ems-be/internal/websocket"
	"nexus-ems-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// RealtimeHandler upgrades authenticated clients to the dashboard socket.
// Session routes, employee pages and notifications all flow over it.
type RealtimeHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	jwt       fiber.Handler
	logger    logger.ILogger
}

func NewRealtimeHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		jwt:       serverutils.NewJwtMiddleware(jwtSecret),
		logger:    log,
	}
}

// token reads the access token from the query string (browsers cannot set
// headers on a websocket handshake) or from the Authorization header.
func token(c *fiber.Ctx) string {
	if t := c.Query("token"); t != "" {
		return t
	}
	authHeader := c.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

// ServeWs handles websocket requests from the peer.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := token(c)
	if tokenStr == "" {
		return serverutils.Unauthorized("Missing token (Query 'token' or Header 'Authorization')")
	}

	claims, err := serverutils.ParseAccessToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("RealtimeHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return serverutils.Unauthorized("Invalid token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return serverutils.Unauthorized("Invalid user ID format in token")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	user := session.User{ID: claims.UserID, Email: claims.Email, DisplayName: claims.DisplayName}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("RealtimeHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID, claims.SessionID, user)
		h.logger.Info("RealtimeHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

// Status reports how many sockets this instance is serving.
func (h *RealtimeHandler) Status(c *fiber.Ctx) error {
	return c.JSON(serverutils.SuccessResponse("Realtime status", fiber.Map{
		"connections": h.hub.ClientCount(),
	}))
}

func (h *RealtimeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/realtime/status", h.jwt, h.Status)
	router.Get("/ws", h.ServeWs)
}
