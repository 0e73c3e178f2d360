package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/service"
	"github.com/dafibh/fortuna/caja-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockJWTValidator is a test double for JWT validation
type mockJWTValidator struct {
	subject string
	err     error
}

func (m *mockJWTValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	return m.subject, m.err
}

var testAllowedOrigins = []string{"http://localhost:9000", "https://caja.app"}

func TestWebSocketHandler_HandleWS_MissingToken(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), nil, &mockJWTValidator{subject: "auth0|a"}, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.HandleWS(c)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestWebSocketHandler_HandleWS_InvalidToken(t *testing.T) {
	e := echo.New()
	validator := &mockJWTValidator{err: websocket.ErrInvalidToken}
	h := NewWebSocketHandler(websocket.NewHub(), nil, validator, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws?token=invalid-jwt", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.HandleWS(c)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestWebSocketHandler_HandleWS_ValidToken_NoUpgrade(t *testing.T) {
	e := echo.New()
	hub := websocket.NewHub()
	h := NewWebSocketHandler(hub, nil, &mockJWTValidator{subject: "auth0|a"}, testAllowedOrigins)

	// Valid token but not a WebSocket upgrade request
	req := httptest.NewRequest(http.MethodGet, "/ws?token=valid-jwt", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.HandleWS(c)

	// gorilla/websocket fails the upgrade after auth has passed
	assert.Error(t, err)
	assert.NotContains(t, err.Error(), "unauthorized")
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestWebSocketHandler_CheckOrigin(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), nil, &mockJWTValidator{}, testAllowedOrigins)

	tests := []struct {
		name     string
		origin   string
		expected bool
	}{
		{"allowed origin", "http://localhost:9000", true},
		{"allowed origin https", "https://caja.app", true},
		{"disallowed origin", "https://evil.com", false},
		{"empty origin (same-origin)", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.expected, h.checkOrigin(req))
		})
	}
}

func readEvent(t *testing.T, conn *ws.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &evt))
	return evt
}

func TestWebSocketHandler_PushStream(t *testing.T) {
	const subject = "auth0|cashier"

	hub := websocket.NewHub()
	accounts := service.NewAccountService(nil)
	require.NoError(t, accounts.Authenticate(subject, &domain.Account{Login: subject, Email: "cajero@caja.test"}))

	e := echo.New()
	e.GET("/ws", NewWebSocketHandler(hub, accounts, &mockJWTValidator{subject: subject}, testAllowedOrigins).HandleWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=valid-jwt"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	// The latest identity is replayed on connect
	evt := readEvent(t, conn)
	assert.Equal(t, "account.changed", evt["type"])
	assert.Equal(t, subject, evt["payload"].(map[string]interface{})["login"])

	require.Eventually(t, func() bool { return hub.ClientCount(subject) == 1 }, time.Second, 10*time.Millisecond)

	hub.Notify(subject, domain.Message{
		Severity: domain.SeveritySuccess,
		Summary:  "Actualizado",
		Detail:   "Tipo de cambio actualizado",
		Life:     domain.DefaultMessageLife,
	})
	evt = readEvent(t, conn)
	assert.Equal(t, "notification.message", evt["type"])

	accounts.Logout(subject)
	evt = readEvent(t, conn)
	assert.Equal(t, "account.changed", evt["type"])
	assert.Nil(t, evt["payload"])

	require.NoError(t, conn.Close())

	// Closing the connection releases the client and its subscription
	assert.Eventually(t, func() bool {
		return hub.ClientCount(subject) == 0 && accounts.SubscriberCount(subject) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
