package notifyserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironmind/internal/auth"
	"ironmind/internal/config"
	ws "ironmind/internal/websocket"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{JWTSecretKey: "ws-secret", JWTExpiry: time.Hour, Issuer: "test"},
		WebSocket: config.WebSocketConfig{
			WriteWaitSeconds:    5,
			PongWaitSeconds:     60,
			PingPeriodSeconds:   54,
			MaxMessageSizeBytes: 512,
		},
	}
}

func TestServeWSRejectsMissingOrBadToken(t *testing.T) {
	h := NewWebSocketHandler(ws.NewHub(), nil, testConfig())

	for _, target := range []string{"/ws/notifications", "/ws/notifications?token=garbage"} {
		rec := httptest.NewRecorder()
		h.ServeWS(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestServeWSAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(NewWebSocketHandler(hub, nil, cfg).ServeWS))
	defer srv.Close()

	token, _, err := auth.GenerateToken(9, "n@example.com", cfg.Auth)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications?token=" + token
	conn, resp, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
}
