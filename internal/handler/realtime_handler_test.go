package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	internalWS "nexus-ems-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newRealtimeApp() *fiber.App {
	hub := internalWS.NewHub(nil, "test", nil, logger.NewNopLogger())
	h := NewRealtimeHandler(hub, secret, logger.NewNopLogger())

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func TestServeWs_RejectsMissingToken(t *testing.T) {
	res, err := newRealtimeApp().Test(httptest.NewRequest(http.MethodGet, "/api/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestServeWs_RejectsBadToken(t *testing.T) {
	res, err := newRealtimeApp().Test(httptest.NewRequest(http.MethodGet, "/api/ws?token=garbage", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestServeWs_RequiresUpgrade(t *testing.T) {
	tok, _, err := serverutils.IssueAccessToken(secret, uuid.NewString(), "a@b.c", "A", "sid-1", time.Hour)
	require.NoError(t, err)

	res, err := newRealtimeApp().Test(httptest.NewRequest(http.MethodGet, "/api/ws?token="+tok, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, res.StatusCode)
}

func TestStatus(t *testing.T) {
	tok, _, err := serverutils.IssueAccessToken(secret, uuid.NewString(), "a@b.c", "A", "sid-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/realtime/status", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := newRealtimeApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
